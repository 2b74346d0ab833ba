// Package reeve provides a client for the Reeve facial-recognition API.
//
// The client manages one logical session per instance, injects the
// bearer credential on every request, and translates HTTP responses
// into typed results and typed errors.
//
// # Usage
//
// Create a client with an API key:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := reeve.NewClient(
//		"https://api.reeve.example.com",
//		reeve.WithAPIKey("your-token"),
//		reeve.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	resp, err := client.Person.List(ctx, &reeve.PersonListOptions{
//		Page:   reeve.Int(1),
//		Amount: reeve.Int(10),
//	})
//
// With username/password instead of a token, Connect performs the login
// and installs the returned token before any other request:
//
//	client, err := reeve.NewClient(url, reeve.WithCredentials("user", "pass"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Connect(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// # Error Handling
//
// Failures carry the HTTP status and raw response payload and are
// matched with errors.As:
//
//	var notFound *reeve.NotFoundError
//	if errors.As(err, &notFound) {
//		// handle missing person/face
//	}
//
// AuthenticationError, ValidationError, NotFoundError, ConflictError
// and ServerError cover the error status codes; a plain *APIError is
// returned when a 2xx response carries an error in its body.
package reeve
