package timer

// Handle identifies a scheduled callback. The zero Handle is never issued, so
// it can be used as "no timer".
type Handle uint64

// maxCatchUp bounds how many times one callback fires in a single Advance
// when dt spans several intervals.
const maxCatchUp = 8

type entry struct {
	fn        func()
	delay     float64
	interval  float64
	remaining float64
}

// Service runs repeating callbacks cooperatively. Nothing fires outside
// Advance, which the host loop calls once per frame.
type Service struct {
	next    Handle
	entries map[Handle]*entry
	order   []Handle
}

func NewService() *Service {
	return &Service{entries: make(map[Handle]*entry)}
}

// ScheduleRepeating arms fn to fire after initialDelay seconds and then every
// interval seconds. A non-positive interval makes the timer fire once.
func (s *Service) ScheduleRepeating(fn func(), initialDelay, interval float64) Handle {
	if s == nil || fn == nil {
		return 0
	}
	if s.entries == nil {
		s.entries = make(map[Handle]*entry)
	}
	if initialDelay < 0 {
		initialDelay = 0
	}
	s.next++
	h := s.next
	s.entries[h] = &entry{
		fn:        fn,
		delay:     initialDelay,
		interval:  interval,
		remaining: initialDelay,
	}
	s.order = append(s.order, h)
	return h
}

// Restart resets the phase of an active timer back to its initial delay.
func (s *Service) Restart(h Handle) bool {
	if s == nil {
		return false
	}
	e, ok := s.entries[h]
	if !ok {
		return false
	}
	e.remaining = e.delay
	return true
}

// Cancel stops a timer. Cancelling an unknown or already cancelled handle is
// a no-op.
func (s *Service) Cancel(h Handle) {
	if s == nil || h == 0 {
		return
	}
	if _, ok := s.entries[h]; !ok {
		return
	}
	delete(s.entries, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of active timers.
func (s *Service) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Advance moves every timer forward by dt seconds and runs due callbacks in
// scheduling order. Timers scheduled by a callback start counting on the
// next Advance.
func (s *Service) Advance(dt float64) {
	if s == nil || dt < 0 {
		return
	}

	pending := append([]Handle(nil), s.order...)
	for _, h := range pending {
		e, ok := s.entries[h]
		if !ok {
			continue
		}
		e.remaining -= dt

		fired := 0
		for e.remaining <= 0 {
			e.fn()
			fired++

			// the callback may have cancelled or restarted this timer
			cur, ok := s.entries[h]
			if !ok || cur != e {
				break
			}
			if e.remaining > 0 {
				break
			}
			if e.interval <= 0 {
				s.Cancel(h)
				break
			}
			if fired >= maxCatchUp {
				e.remaining = e.interval
				break
			}
			e.remaining += e.interval
		}
	}
}
