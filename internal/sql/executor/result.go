package executor

// Response is what one REPL line produces, before the prompt prefix is applied.
type Response struct {
	Lines []string

	// Exit is set once the session has been asked to shut down.
	Exit bool
}

func line(s string) Response { return Response{Lines: []string{s}} }
