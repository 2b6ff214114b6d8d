// Package apitour resolves and validates HTTP request parameters from
// declarative specs.
//
// A route declares its inputs as a list of ParameterSpec values, each naming
// the request section it is read from (query, path, header, form, JSON body,
// uploaded files), the scalar kind it is coerced to, whether it is required,
// an optional default and constraints. A Resolver interprets those specs
// against an *http.Request and either returns the typed Values or a
// *ValidationError listing every failed field.
//
// # Key Components
//
//   - Resolver: extracts, coerces and validates parameters
//   - ParameterSpec / Field / Constraint: the declarative description
//   - PaginationResolver: reusable skip/limit and page/size resolver with a cap
//   - TokenChecker: static API token comparison
//
// # Example Usage
//
//	specs := []apitour.ParameterSpec{
//	    apitour.Query("page", apitour.KindInt, apitour.Default(1), apitour.With(apitour.Gt(0))),
//	    apitour.Query("size", apitour.KindInt, apitour.Default(10), apitour.With(apitour.Le(100))),
//	}
//	if err := apitour.ValidateSpecs(specs); err != nil {
//	    log.Fatal(err)
//	}
//
//	resolver := apitour.NewResolver()
//	vals, err := resolver.ResolveAll(r, specs)
//	if err != nil {
//	    // *apitour.ValidationError, errors.Is(err, apitour.ErrConstraintViolation)
//	}
//	page, size := vals.Int("page"), vals.Int("size")
//
// Resolvers and pagination resolvers are read-only after construction and
// can be shared across goroutines. See the http package for the route table.
package apitour
