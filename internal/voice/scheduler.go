package voice

// Scheduler enfileira buffers de saida um atras do outro, sem sobreposicao e
// sem intervalo. Os tempos sao segundos no relogio do contexto de saida.
type Scheduler struct {
	next float64
}

// Schedule devolve o instante de inicio do proximo buffer: max(next, now).
func (s *Scheduler) Schedule(now, duration float64) float64 {
	start := s.next
	if now > start {
		start = now
	}
	s.next = start + duration
	return start
}

// Next e o instante em que o ultimo buffer agendado termina.
func (s *Scheduler) Next() float64 {
	return s.next
}

func (s *Scheduler) Reset() {
	s.next = 0
}
