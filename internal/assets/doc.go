// Package assets provides theme stylesheet loading with a user-directory
// override and embedded bundled themes.
//
// Themes are plain CSS files named <theme>.css. The Resolver checks a user
// themes directory first (when configured) and falls back to the embedded
// bundle, so users can shadow a bundled theme by dropping a file with the
// same name into their themes directory.
package assets
