package errors

import "fmt"

var ErrNoQueue = fmt.Errorf("no queue")
var ErrEmptyQueue = fmt.Errorf("queue is empty")
var ErrAllocation = fmt.Errorf("allocation failed")
var ErrElementLinked = fmt.Errorf("element is still linked")
var ErrElementReleased = fmt.Errorf("element already released")
var ErrInvalidProbability = fmt.Errorf("fail probability must be between 0 and 100")
