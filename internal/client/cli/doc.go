// Package cli implements the gophslides command line client.
//
// Commands take a share link or the public id of a deck remembered in the
// local library:
//
//	gophslides create [deck.md]         create a presentation, print its links
//	gophslides show <ref> [-O out.md]   decrypt and print a presentation
//	gophslides push <ref> <deck.md>     replace the slides with a deck file
//	gophslides theme <ref> <theme.css>  change the theme
//	gophslides verify <ref>             check an edit link
//	gophslides export <ref> [-O file]   snapshot to object storage
//	gophslides links <ref>              print view and edit links
//	gophslides list | forget <id>       manage the local library
//	gophslides ping | version
//
// Decryption keys never leave the machine: the server only receives
// ciphertext, ids and edit secrets.
package cli
