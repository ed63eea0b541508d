// Package hibp is a thin client for the Have I Been Pwned breach API.
//
// Every method issues exactly one GET request and normalizes the result:
//
//	client, err := hibp.New(hibp.WithAPIKey(key), hibp.WithUserAgent("my-app"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	breaches, err := client.BreachedAccount(ctx, "foo@bar.com", hibp.BreachedAccountOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if breaches == nil {
//	    // account does not appear in any breach
//	}
//
// A 404 from the API is not an error: lookups return a nil value instead.
// A 403 yields an error whose message starts with "Forbidden" and a 400 one
// starting with "Bad request"; both can be matched with errors.Is against
// ErrForbidden and ErrBadRequest. Any other non-2xx status yields an *Error
// carrying the status code. Transport failures are returned unchanged.
package hibp
