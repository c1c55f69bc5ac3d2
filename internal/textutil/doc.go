// Package textutil provides filename sanitization helpers.
//
// SanitizeFileName makes user-facing titles safe to use as filenames;
// SanitizeToken produces lowercase tokens for generated file and directory
// names.
package textutil
