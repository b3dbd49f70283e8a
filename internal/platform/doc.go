package platform

// Package platform contains filesystem helpers and channel list handling:
// destination directory creation, the user Downloads directory, the
// built-in channel set and loading channels from a text file.
