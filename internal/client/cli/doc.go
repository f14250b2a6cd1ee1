// Package cli implements the profilesync command-line client.
//
// Commands
//
//	ping                                   check the server is reachable
//	token -owner ID [-email E]             mint a development access token
//	create -first -last -address -profession -age -image PATH
//	get [-o PATH]                          show the profile, optionally saving the image
//	replace-image -image PATH              swap the profile image
//
// Upload commands print progress as it is reported by the server.
package cli
