// go-qrcode
// Copyright 2014 Tom Harwood

package generator

import (
	"context"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/weilsonwonder/go-qrstyle/render"
)

type SessionSuite struct {
	suite.Suite

	canvas  *render.Canvas
	session *Session

	// blocked is closed once a slow background load has started.
	blocked chan struct{}
	once    sync.Once

	mu      sync.Mutex
	results []*Result
	errs    []error
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.blocked = make(chan struct{})
	s.once = sync.Once{}
	s.results, s.errs = nil, nil

	// "slow" backgrounds block until their generation is cancelled.
	source := render.ImageSourceFunc(func(ctx context.Context, ref string) (image.Image, error) {
		s.once.Do(func() { close(s.blocked) })
		<-ctx.Done()
		return nil, ctx.Err()
	})

	s.canvas = render.NewCanvas()
	s.session = NewSession(New(quietLogger(), render.Options{Images: source}), s.canvas)
	s.session.OnChange(func(res *Result, err error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.results = append(s.results, res)
		s.errs = append(s.errs, err)
	})
}

func (s *SessionSuite) TearDownTest() {
	s.session.Close()
}

func smallSettings(text string) Settings {
	st := DefaultSettings(text)
	st.Scale = 2

	return st
}

func (s *SessionSuite) TestUpdateCommits() {
	s.session.Update(smallSettings("first"))
	s.session.Wait()

	res, err := s.session.Latest()
	s.Require().NoError(err)
	s.Equal("first", res.Settings.Text)
	s.Same(res.Image, s.canvas.Image())
	s.Len(s.results, 1)
}

func (s *SessionSuite) TestNewerUpdateSupersedes() {
	slow := smallSettings("slow")
	slow.BackgroundImage = "slow.png"

	s.session.Update(slow)
	<-s.blocked

	s.session.Update(smallSettings("fast"))
	s.session.Wait()

	res, err := s.session.Latest()
	s.Require().NoError(err)
	s.Equal("fast", res.Settings.Text)

	// The superseded generation never reached the surface or observers.
	s.Equal(1, s.canvas.Presented())
	s.Require().Len(s.results, 1)
	s.Equal("fast", s.results[0].Settings.Text)
}

func (s *SessionSuite) TestLastWriterWins() {
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		s.session.Update(smallSettings(text))
	}
	s.session.Wait()

	res, err := s.session.Latest()
	s.Require().NoError(err)
	s.Equal("e", res.Settings.Text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().NotEmpty(s.results)
	s.Equal("e", s.results[len(s.results)-1].Settings.Text)
}

func (s *SessionSuite) TestErrorKeepsLastImage() {
	s.session.Update(smallSettings("good"))
	s.session.Wait()

	bad := smallSettings("bad")
	bad.MarkerShape = "star"
	s.session.Update(bad)
	s.session.Wait()

	res, err := s.session.Latest()
	s.Error(err)
	s.Equal("good", res.Settings.Text)
	s.Equal(1, s.canvas.Presented())
	s.Require().Len(s.errs, 2)
	s.Nil(s.results[1])
	s.Error(s.errs[1])
}

func (s *SessionSuite) TestCloseCancelsInFlight() {
	slow := smallSettings("slow")
	slow.BackgroundImage = "slow.png"

	s.session.Update(slow)
	<-s.blocked
	s.session.Close()

	res, err := s.session.Latest()
	s.Nil(res)
	s.NoError(err)
	s.Zero(s.canvas.Presented())

	s.session.Update(smallSettings("ignored"))
	s.session.Wait()
	s.Zero(s.canvas.Presented())
}
