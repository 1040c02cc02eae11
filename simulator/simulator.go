// Package simulator generates realistic community traffic against a
// running API instance: registrations, threads, comment trees, votes,
// and event RSVPs. It is a load and smoke tool, not part of the server.
package simulator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"sloboda/internal/models"
	"sloboda/pkg/apiclient"

	"github.com/google/uuid"
	"resty.dev/v3"
)

type SimConfig struct {
	NumUsers         int
	NumThreads       int // seed threads created before activity starts
	SimulationTime   time.Duration
	ThreadFrequency  float64 // threads/user/hour
	CommentFrequency float64 // comments/user/hour
	VoteFrequency    float64 // votes/user/hour
	ReplyRatio       float64 // share of comments that reply to another comment
	ZipfS            float64 // skew of thread popularity
	APIBaseURL       string
}

type Stats struct {
	mu              sync.RWMutex
	StartTime       time.Time
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalThreads    int
	TotalComments   int
	TotalVotes      int
	Latencies       []time.Duration
}

func (st *Stats) record(latency time.Duration, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.TotalRequests++
	if ok {
		st.SuccessRequests++
	} else {
		st.FailedRequests++
	}
	st.Latencies = append(st.Latencies, latency)
}

// AverageLatency is computed over all recorded requests.
func (st *Stats) AverageLatency() time.Duration {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if len(st.Latencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, l := range st.Latencies {
		total += l
	}
	return total / time.Duration(len(st.Latencies))
}

// SimulatedUser is one synthetic account. The session token comes from
// the login response and rides as a Bearer header on every call.
type SimulatedUser struct {
	ID       uuid.UUID
	Username string
	Email    string
	Password string
	Token    string
}

type Simulator struct {
	config   SimConfig
	stats    *Stats
	client   *resty.Client
	users    []*SimulatedUser
	threads  []uuid.UUID
	comments map[uuid.UUID][]uuid.UUID // thread -> comment ids
	zipf     *rand.Zipf
	mu       sync.RWMutex
}

func NewSimulator(config SimConfig) *Simulator {
	src := rand.NewSource(time.Now().UnixNano())
	return &Simulator{
		config:   config,
		stats:    &Stats{StartTime: time.Now()},
		client:   apiclient.New(config.APIBaseURL),
		comments: make(map[uuid.UUID][]uuid.UUID),
		zipf:     rand.NewZipf(rand.New(src), config.ZipfS, 1.0, uint64(max(config.NumThreads-1, 1))),
	}
}

func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting simulation against %s", s.config.APIBaseURL)

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateActivities(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.reportProgress(ctx)
	}()

	wg.Wait()
	return s.client.Close()
}

// initialize registers and logs in the users, then seeds threads.
func (s *Simulator) initialize(ctx context.Context) error {
	run := time.Now().UnixNano()
	for i := 0; i < s.config.NumUsers; i++ {
		user := &SimulatedUser{
			Username: fmt.Sprintf("sim_user_%d_%d", run, i),
			Email:    fmt.Sprintf("sim_%d_%d@example.org", run, i),
			Password: uuid.NewString(),
		}
		if err := s.registerAndLogin(ctx, user); err != nil {
			return err
		}
		s.users = append(s.users, user)
	}
	log.Printf("Registered %d users", len(s.users))

	for i := 0; i < s.config.NumThreads; i++ {
		user := s.users[rand.Intn(len(s.users))]
		if err := s.createThread(ctx, user); err != nil {
			log.Printf("Seed thread creation failed: %v", err)
		}
	}
	log.Printf("Seeded %d threads", len(s.threads))
	return nil
}

func (s *Simulator) registerAndLogin(ctx context.Context, user *SimulatedUser) error {
	start := time.Now()
	res, err := s.client.R().WithContext(ctx).
		SetBody(map[string]string{
			"username": user.Username,
			"email":    user.Email,
			"password": user.Password,
		}).
		SetResult(&models.User{}).
		Post("/api/auth/register")
	s.stats.record(time.Since(start), err == nil && res.IsSuccess())
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("register failed for %s: %s", user.Username, res.Status())
	}
	user.ID = res.Result().(*models.User).ID

	type loginResponse struct {
		Token string `json:"token"`
	}
	start = time.Now()
	res, err = s.client.R().WithContext(ctx).
		SetBody(map[string]string{"email": user.Email, "password": user.Password}).
		SetResult(&loginResponse{}).
		Post("/api/auth/login")
	s.stats.record(time.Since(start), err == nil && res.IsSuccess())
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("login failed for %s: %s", user.Username, res.Status())
	}
	user.Token = res.Result().(*loginResponse).Token
	return nil
}

// pickThread favors early threads per the configured Zipf skew, which
// mirrors how attention concentrates on a few hot topics.
func (s *Simulator) pickThread() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.threads) == 0 {
		return uuid.Nil, false
	}
	idx := int(s.zipf.Uint64())
	if idx >= len(s.threads) {
		idx = len(s.threads) - 1
	}
	return s.threads[idx], true
}

func (s *Simulator) pickUser() *SimulatedUser {
	return s.users[rand.Intn(len(s.users))]
}

// GetStats returns a snapshot for final reporting.
func (s *Simulator) GetStats() (requests, success, failed int64, threads, comments, votes int, avg time.Duration) {
	s.stats.mu.RLock()
	requests = s.stats.TotalRequests
	success = s.stats.SuccessRequests
	failed = s.stats.FailedRequests
	threads = s.stats.TotalThreads
	comments = s.stats.TotalComments
	votes = s.stats.TotalVotes
	s.stats.mu.RUnlock()
	return requests, success, failed, threads, comments, votes, s.stats.AverageLatency()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
