package main

import (
	"context"
	"flag"
	"log"
	"time"

	"sloboda/simulator"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	users := flag.Int("users", 10, "number of simulated users")
	duration := flag.Duration("duration", 10*time.Minute, "how long to run")
	flag.Parse()

	config := simulator.SimConfig{
		NumUsers:         *users,
		NumThreads:       5,
		SimulationTime:   *duration,
		ThreadFrequency:  20.0,
		CommentFrequency: 60.0,
		VoteFrequency:    100.0,
		ReplyRatio:       0.4,
		ZipfS:            1.07,
		APIBaseURL:       *baseURL,
	}

	log.Printf("Starting simulation with configuration:")
	log.Printf("- API URL: %s", config.APIBaseURL)
	log.Printf("- Number of users: %d", config.NumUsers)
	log.Printf("- Seed threads: %d", config.NumThreads)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Thread frequency: %.2f threads/user/hour", config.ThreadFrequency)
	log.Printf("- Comment frequency: %.2f comments/user/hour", config.CommentFrequency)
	log.Printf("- Vote frequency: %.2f votes/user/hour", config.VoteFrequency)
	log.Printf("- Reply ratio: %.1f%%", config.ReplyRatio*100)
	log.Printf("- Zipf parameter: %.2f", config.ZipfS)

	sim := simulator.NewSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	requests, success, failed, threads, comments, votes, avg := sim.GetStats()
	log.Printf("\nSimulation completed. Final stats:")
	log.Printf("- Total requests: %d (ok=%d failed=%d)", requests, success, failed)
	log.Printf("- Threads created: %d", threads)
	log.Printf("- Comments created: %d", comments)
	log.Printf("- Votes cast: %d", votes)
	log.Printf("- Average latency: %v", avg)
}
