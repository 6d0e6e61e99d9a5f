// Package benchmark fires concurrent requests at a running API and
// summarises the latencies.
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// LoadRunner sends Requests requests with at most Concurrency in flight.
type LoadRunner struct {
	BaseURL     string
	Concurrency int
	Requests    int
	Client      *http.Client
}

// Result summarises one run.
type Result struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"totalRequests"`
	SuccessCount   int           `json:"successCount"`
	FailureCount   int           `json:"failureCount"`
	TotalTime      time.Duration `json:"totalTime"`
	AverageTime    time.Duration `json:"averageTime"`
	MinTime        time.Duration `json:"minTime"`
	MaxTime        time.Duration `json:"maxTime"`
	RequestsPerSec float64       `json:"requestsPerSec"`
	StatusCodes    map[int]int   `json:"statusCodes"`
	Errors         []string      `json:"errors"`
}

type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// NewLoadRunner creates a runner with a 10s client timeout.
func NewLoadRunner(baseURL string, concurrency, requests int) *LoadRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &LoadRunner{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Get runs GET path.
func (b *LoadRunner) Get(path string) *Result {
	return b.run(http.MethodGet, b.BaseURL+path, nil)
}

// Post runs POST path with payload encoded as JSON; nil sends no body.
func (b *LoadRunner) Post(path string, payload interface{}) *Result {
	url := b.BaseURL + path
	if payload == nil {
		return b.run(http.MethodPost, url, nil)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return &Result{URL: url, Method: http.MethodPost, Errors: []string{fmt.Sprintf("encode payload: %v", err)}}
	}
	return b.run(http.MethodPost, url, body)
}

func (b *LoadRunner) run(method, url string, payload []byte) *Result {
	results := make(chan requestResult, b.Requests)
	var wg sync.WaitGroup
	slots := make(chan struct{}, b.Concurrency)

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()
			results <- b.do(method, url, payload)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	res := &Result{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		MinTime:       1<<63 - 1,
		StatusCodes:   make(map[int]int),
	}
	var totalTime time.Duration
	for r := range results {
		if r.err != nil {
			res.FailureCount++
			res.Errors = append(res.Errors, r.err.Error())
			continue
		}

		totalTime += r.duration
		if r.duration < res.MinTime {
			res.MinTime = r.duration
		}
		if r.duration > res.MaxTime {
			res.MaxTime = r.duration
		}

		res.StatusCodes[r.statusCode]++
		if r.statusCode >= 200 && r.statusCode < 300 {
			res.SuccessCount++
		} else {
			res.FailureCount++
		}
	}

	res.TotalTime = time.Since(startTime)
	if res.TotalTime > 0 {
		res.RequestsPerSec = float64(b.Requests) / res.TotalTime.Seconds()
	}
	if n := res.SuccessCount + res.FailureCount; n > 0 {
		res.AverageTime = totalTime / time.Duration(n)
	}
	return res
}

func (b *LoadRunner) do(method, url string, payload []byte) requestResult {
	start := time.Now()
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return requestResult{err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return requestResult{err: err}
	}
	defer resp.Body.Close()

	return requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
}

// Log writes the summary through the process logger.
func (r *Result) Log() {
	logger.L().Info("load run",
		zap.String("method", r.Method),
		zap.String("url", r.URL),
		zap.Int("concurrency", r.Concurrency),
		zap.Int("requests", r.TotalRequests),
		zap.Int("success", r.SuccessCount),
		zap.Int("failure", r.FailureCount),
		zap.Duration("total", r.TotalTime),
		zap.Duration("avg", r.AverageTime),
		zap.Duration("min", r.MinTime),
		zap.Duration("max", r.MaxTime),
		zap.Float64("rps", r.RequestsPerSec),
		zap.Any("statusCodes", r.StatusCodes),
	)
	for i, msg := range r.Errors {
		if i >= 5 {
			logger.L().Warn("more errors omitted", zap.Int("count", len(r.Errors)-5))
			break
		}
		logger.L().Warn("request failed", zap.String("error", msg))
	}
}
