package inquiry

import (
	"main/internal/bus"
	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

// ServiceType tags this hub's emissions for external sink routing.
const ServiceType = "Inquiry"

// Service runs customer inquiries through their lifecycle, keyed by
// inquiry ID. Unlike the other stages it does not notify on every store:
// only completed transitions and quote updates reach the listeners, so the
// hub's keyed store and listener fan-out are carried here directly.
type Service struct {
	store     map[string]schema.Inquiry
	listeners []bus.Listener[schema.Inquiry]
}

// NewService creates an empty inquiry service.
func NewService() *Service {
	return &Service{store: make(map[string]schema.Inquiry)}
}

// Type returns the emission routing tag.
func (s *Service) Type() string {
	return ServiceType
}

// Inquiry returns the stored inquiry by ID.
func (s *Service) Inquiry(inquiryID string) (schema.Inquiry, bool) {
	inq, ok := s.store[inquiryID]
	return inq, ok
}

// AddListener registers a downstream consumer of inquiry transitions.
func (s *Service) AddListener(l bus.Listener[schema.Inquiry]) {
	s.listeners = append(s.listeners, l)
}

func (s *Service) notify(inq schema.Inquiry) {
	for _, l := range s.listeners {
		l.OnAdd(inq)
	}
}

// OnInquiry ingests one inquiry. A RECEIVED inquiry is stored, moved to
// QUOTED, and re-submitted through this same entrypoint without notifying
// anyone; the re-submission then completes it: QUOTED moves to DONE,
// is stored, and listeners are notified exactly once. Terminal states
// arriving from the feed are ignored.
func (s *Service) OnInquiry(inq schema.Inquiry) {
	switch inq.State {
	case schema.InquiryReceived:
		s.store[inq.InquiryID] = inq
		s.OnInquiry(inq.WithState(schema.InquiryQuoted))
	case schema.InquiryQuoted:
		done := inq.WithState(schema.InquiryDone)
		s.store[done.InquiryID] = done
		s.notify(done)
	}
}

// SendQuote overwrites the stored price for an inquiry without touching
// its state, and notifies listeners with the updated record.
func (s *Service) SendQuote(inquiryID string, price schema.Price) error {
	inq, ok := s.store[inquiryID]
	if !ok {
		return errors.Wrapf(exception.ErrNotFound, "inquiry: %s", inquiryID)
	}

	quoted := inq.WithPrice(price)
	s.store[inquiryID] = quoted
	s.notify(quoted)
	return nil
}

// RejectInquiry marks an inquiry REJECTED. The transition is
// unconditional; an already-terminal inquiry is overwritten.
func (s *Service) RejectInquiry(inquiryID string) error {
	inq, ok := s.store[inquiryID]
	if !ok {
		return errors.Wrapf(exception.ErrNotFound, "inquiry: %s", inquiryID)
	}

	s.store[inquiryID] = inq.WithState(schema.InquiryRejected)
	return nil
}
