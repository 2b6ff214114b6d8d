// Package http exposes the tour endpoints over HTTP.
//
// Routes are registered on a chi router. Handlers that take parameters
// declare them as apitour.ParameterSpec tables; bind resolves the table with
// an apitour.Resolver before the handler runs, so a handler only ever sees
// values that are present, coerced and within their constraints. Any
// resolution failure is answered by HandleError with a 422 listing every
// failed parameter:
//
//	{
//	  "error": "validation_error",
//	  "message": "Request validation failed",
//	  "details": [
//	    {"field": "query.size", "source": "query", "rule": "le", "value": "500",
//	     "message": "Input should be less than or equal to 100"}
//	  ]
//	}
//
// # Usage
//
//	pagination, _ := apitour.NewPaginationResolver(50)
//	cfg := http.HandlerConfig{
//	    Pagination:  pagination,
//	    Token:       apitour.NewTokenChecker("SECRET_VALUE"),
//	    RedirectURL: "https://fastapi.tiangolo.com",
//	    CatFile:     "cat.jpg",
//	}
//	handler := http.NewHandler(&cfg, store)
//	http.ListenAndServe(":8000", handler.Router())
//
// # Middleware
//
// RequestID and AccessLog wrap every route. TokenMiddleware guards the
// protected group; with a non-enforcing TokenChecker it only logs mismatches.
package http
