package cpu

const (
	STACK_LIMIT = 256 // Default maximum stack depth
)

// Stack is a bounded LIFO of values.
type Stack struct {
	Limit int // Maximum depth; zero selects STACK_LIMIT.
	Data  []int
}

func (s *Stack) limit() int {
	if s.Limit <= 0 {
		return STACK_LIMIT
	}
	return s.Limit
}

// Push value on the stack, failing when the stack is full.
func (s *Stack) Push(value int) (err error) {
	if s.Full() {
		err = ErrStackOverflow
		return
	}
	s.Data = append(s.Data, value)
	return
}

// Pop the top value from the stack, failing when the stack is empty.
func (s *Stack) Pop() (value int, err error) {
	value, ok := s.Peek()
	if !ok {
		err = ErrStackUnderflow
		return
	}
	s.Data = s.Data[:len(s.Data)-1]
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) >= s.limit()
}

func (s *Stack) Len() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value int, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
