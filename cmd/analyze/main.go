package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resume-reviewer/internal/client"
)

func main() {
	server := flag.String("server", "http://localhost:3000", "resume reviewer base URL")
	resume := flag.String("resume", "", "path to the resume (PDF or TXT)")
	jobDescription := flag.String("jobdesc", "", "job description text")
	jobDescriptionFile := flag.String("jobdesc-file", "", "read the job description from a file")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout")
	verbose := flag.Bool("v", false, "log state changes")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelWarn)
	}

	desc := *jobDescription
	if *jobDescriptionFile != "" {
		data, err := os.ReadFile(*jobDescriptionFile)
		if err != nil {
			log.Fatalf("❌ Failed to read job description: %v", err)
		}
		desc = string(data)
	}

	machine := client.NewMachine(func(from, to client.State) {
		log.Debugf("state %s -> %s", from, to)
	})
	submitter := client.NewSubmitter(*server, *timeout, machine)

	suggestions, err := submitter.Submit(context.Background(), *resume, desc)
	if err != nil {
		var submitErr *client.SubmitError
		if errors.As(err, &submitErr) {
			fmt.Fprint(os.Stderr, submitErr.Message())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println(suggestions)
}
