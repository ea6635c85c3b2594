package internal

// Version is the wordtoons release version
const Version = "0.3.0"
