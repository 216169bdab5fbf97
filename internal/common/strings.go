package common

// UnknownStr is the String() rendition of unrecognised enum values.
const UnknownStr = "unknown"
