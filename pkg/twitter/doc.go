// Package twitter provides a client for the RapidAPI batched follower lookup.
//
// This package includes:
//   - A configurable HTTP client with the required RapidAPI headers
//   - Type-safe models for the UsersByRestIds response
//   - Helper functions for constructing API endpoints
//
// Example usage:
//
//	client := twitter.NewClient(twitter.DefaultBaseURL, "twitter135.p.rapidapi.com",
//	    apiKey, 30*time.Second, nil)
//
//	counts, err := client.FetchFollowerCounts([]string{"44196397", "13298072"})
//	if err != nil {
//	    var apiErr *errors.Error
//	    if stderrors.As(err, &apiErr) {
//	        switch apiErr.Type {
//	        case errors.ErrorTypeAuth:
//	            // Handle a rejected API key
//	        case errors.ErrorTypeRateLimit:
//	            // Handle rate limit
//	        }
//	    }
//	}
package twitter
