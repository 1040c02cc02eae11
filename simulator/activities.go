package simulator

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"sloboda/internal/models"

	"github.com/google/uuid"
)

// frequencyTicker converts an events/user/hour rate into a ticker for
// the whole population.
func (s *Simulator) frequencyTicker(perUserPerHour float64) *time.Ticker {
	perSecond := perUserPerHour * float64(s.config.NumUsers) / 3600.0
	if perSecond <= 0 {
		perSecond = 0.1
	}
	return time.NewTicker(time.Duration(float64(time.Second) / perSecond))
}

func (s *Simulator) simulateActivities(ctx context.Context) {
	log.Printf("Starting activities")

	var wg sync.WaitGroup
	for _, loop := range []func(context.Context){s.threadLoop, s.commentLoop, s.voteLoop} {
		wg.Add(1)
		go func(fn func(context.Context)) {
			defer wg.Done()
			fn(ctx)
		}(loop)
	}
	wg.Wait()
}

func (s *Simulator) threadLoop(ctx context.Context) {
	ticker := s.frequencyTicker(s.config.ThreadFrequency)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.createThread(ctx, s.pickUser()); err != nil {
				log.Printf("Thread creation failed: %v", err)
			}
		}
	}
}

func (s *Simulator) createThread(ctx context.Context, user *SimulatedUser) error {
	start := time.Now()
	res, err := s.client.R().WithContext(ctx).
		SetAuthToken(user.Token).
		SetBody(map[string]interface{}{
			"title": randomTitle(),
			"body":  randomBody(),
			"type":  "discussion",
			"tags":  randomTags(),
		}).
		SetResult(&models.Thread{}).
		Post("/api/forum/threads")
	ok := err == nil && res.IsSuccess()
	s.stats.record(time.Since(start), ok)
	if err != nil {
		return err
	}
	if !ok {
		// New users cannot create threads until promoted; that is
		// expected traffic, not a simulator bug.
		return nil
	}

	thread := res.Result().(*models.Thread)
	s.mu.Lock()
	s.threads = append(s.threads, thread.ID)
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.TotalThreads++
	s.stats.mu.Unlock()
	return nil
}

func (s *Simulator) commentLoop(ctx context.Context) {
	ticker := s.frequencyTicker(s.config.CommentFrequency)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.createComment(ctx)
		}
	}
}

func (s *Simulator) createComment(ctx context.Context) {
	threadID, ok := s.pickThread()
	if !ok {
		return
	}
	user := s.pickUser()

	body := map[string]interface{}{
		"threadId": threadID.String(),
		"body":     randomBody(),
	}
	// Sometimes reply to an existing comment to grow real trees.
	if rand.Float64() < s.config.ReplyRatio {
		s.mu.RLock()
		if ids := s.comments[threadID]; len(ids) > 0 {
			body["parentCommentId"] = ids[rand.Intn(len(ids))].String()
		}
		s.mu.RUnlock()
	}

	start := time.Now()
	res, err := s.client.R().WithContext(ctx).
		SetAuthToken(user.Token).
		SetBody(body).
		SetResult(&models.Comment{}).
		Post("/api/comments")
	success := err == nil && res.IsSuccess()
	s.stats.record(time.Since(start), success)
	if !success {
		return
	}

	comment := res.Result().(*models.Comment)
	s.mu.Lock()
	s.comments[threadID] = append(s.comments[threadID], comment.ID)
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.TotalComments++
	s.stats.mu.Unlock()
}

func (s *Simulator) voteLoop(ctx context.Context) {
	ticker := s.frequencyTicker(s.config.VoteFrequency)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.castVote(ctx)
		}
	}
}

func (s *Simulator) castVote(ctx context.Context) {
	threadID, ok := s.pickThread()
	if !ok {
		return
	}
	user := s.pickUser()

	body := map[string]interface{}{"vote_value": randomVoteValue()}
	// Vote on a comment a third of the time, when one exists.
	s.mu.RLock()
	ids := s.comments[threadID]
	s.mu.RUnlock()
	if len(ids) > 0 && rand.Float64() < 0.33 {
		body["comment_id"] = ids[rand.Intn(len(ids))].String()
	} else {
		body["thread_id"] = threadID.String()
	}

	start := time.Now()
	res, err := s.client.R().WithContext(ctx).
		SetAuthToken(user.Token).
		SetBody(body).
		Post("/api/votes")
	success := err == nil && res.IsSuccess()
	s.stats.record(time.Since(start), success)
	if !success {
		return
	}

	s.stats.mu.Lock()
	s.stats.TotalVotes++
	s.stats.mu.Unlock()
}

func (s *Simulator) reportProgress(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			requests, success, failed, threads, comments, votes, avg := s.GetStats()
			log.Printf("Progress: requests=%d ok=%d failed=%d threads=%d comments=%d votes=%d avg=%v",
				requests, success, failed, threads, comments, votes, avg)
		}
	}
}

var titleWords = []string{
	"garden", "cleanup", "meetup", "playground", "parking", "compost",
	"heating", "library", "fundraiser", "workshop", "repair", "market",
}

var voteValues = []int{models.VoteUp, models.VoteUp, models.VoteUp, models.VoteDown}

func randomTitle() string {
	return titleWords[rand.Intn(len(titleWords))] + " " + titleWords[rand.Intn(len(titleWords))] + " " + uuid.NewString()[:8]
}

func randomBody() string {
	n := 1 + rand.Intn(4)
	body := ""
	for i := 0; i < n; i++ {
		body += titleWords[rand.Intn(len(titleWords))] + " "
	}
	return body
}

func randomTags() []string {
	return []string{titleWords[rand.Intn(len(titleWords))], titleWords[rand.Intn(len(titleWords))]}
}

// Upvotes dominate, like real forums.
func randomVoteValue() int {
	return voteValues[rand.Intn(len(voteValues))]
}
