// Package mapper synthesizes struct-to-struct mappers at run time.
//
// A Factory owns the conversion rules and the primitive conversion
// categories. NewMutator and NewConstructor match the members of two struct
// types by case-insensitive name once, resolve a conversion strategy for
// every matched pair and return a closure that only moves values:
//
//	f := mapper.New().RegisterConverter(decimal.NewFromString)
//	toDTO, err := mapper.NewConstructor[animal.Animal, animal.AnimalDTO](f)
//
// Members are exported fields (promoted ones included) and properties, an
// exported getter Name() X paired with a setter SetName(X) on the pointer type.
package mapper
