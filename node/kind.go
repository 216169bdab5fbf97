package node

//go:generate go tool stringer -type=DispatcherEnum -output=kind_string.go

type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherSlice
	DispatcherMap
	DispatcherEnumerable // both sides iterate, but they are not a slice pair (arrays, array <-> slice)
)
