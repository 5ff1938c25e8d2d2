// Package patches finds patch directories and the fragments inside them.
//
// A patch directory is any directory under the source root whose name ends
// in ".d". It is named after the file it produces:
//
//	patches/dot-bashrc.d/        -> $TARGET/.bashrc
//	patches/dot-config/app.json.d -> $TARGET/.config/app.json
//
// Every regular file directly inside a patch directory is a fragment,
// except the documentation files in the ignore list. Fragments are returned
// in lexical order, which is the order they are merged in; a numeric prefix
// such as 000-base, 010-local makes that order explicit.
package patches
