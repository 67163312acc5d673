package internal

// Version is the current lexipick release version.
const Version = "0.3.0"
