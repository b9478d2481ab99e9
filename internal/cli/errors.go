package cli

import "fmt"

type badMoveError struct {
	spec   string
	reason string
}

func (e badMoveError) Error() string {
	return fmt.Sprintf("invalid --move %q: %s (want old:new, 0-based)", e.spec, e.reason)
}

type unknownTopicError struct {
	topic string
}

func (e unknownTopicError) Error() string {
	return fmt.Sprintf("unknown docs topic: %q (run `pdfmerge docs` to list topics)", e.topic)
}
