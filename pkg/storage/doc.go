// Package storage writes the collected followers to the output file.
//
// The file starts with the header row Name|Username|Location|Followers and
// holds one follower per line, fields joined by the configured separator.
// Line breaks inside fields are replaced by spaces. The file is written to a
// temporary name first and renamed over the target, so readers never see a
// partial file and a failed run leaves the previous file untouched.
//
//	manager, err := storage.NewManager("output.txt", "|")
//	if err != nil {
//		return err
//	}
//	err = manager.SaveFollowers(list)
package storage
