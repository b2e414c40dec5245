package Controllers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LogEntry is one line of the request log file.
type LogEntry struct {
	Timestamp     time.Time   `json:"timestamp"`
	Method        string      `json:"method"`
	Path          string      `json:"path"`
	URL           string      `json:"url"`
	Status        int         `json:"status"`
	LatencyMS     float64     `json:"latency"`
	IP            string      `json:"ip"`
	UserAgent     string      `json:"user_agent"`
	RequestID     string      `json:"request_id,omitempty"`
	RequestBody   interface{} `json:"request_body,omitempty"`
	Error         string      `json:"error,omitempty"`
	ContentLength int64       `json:"content_length"`
}

// LogGroup represents a group of logs by method and path
type LogGroup struct {
	Path        string     `json:"path"`
	Method      string     `json:"method"`
	Count       int        `json:"count"`
	AvgLatency  float64    `json:"avg_latency_ms"`
	MinLatency  float64    `json:"min_latency_ms"`
	MaxLatency  float64    `json:"max_latency_ms"`
	SuccessRate float64    `json:"success_rate"`
	Logs        []LogEntry `json:"logs"`
}

type LogsResponse struct {
	Groups      []LogGroup `json:"groups"`
	TotalLogs   int        `json:"total_logs"`
	TotalGroups int        `json:"total_groups"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	TotalPages  int        `json:"total_pages"`
	DateFrom    time.Time  `json:"date_from"`
	DateTo      time.Time  `json:"date_to"`
}

// LogController serves the request log written by middleware.RequestLogger.
type LogController struct {
	path   string
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewLogController(path string, loc *time.Location, logger *zap.Logger) *LogController {
	return &LogController{path: path, loc: loc, now: time.Now, logger: logger}
}

// GetLogs lists entries grouped by method and path, busiest first.
func (h *LogController) GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 50
	}

	from, to, err := h.window(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	logs, err := h.read(from, to)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	groups := groupLogs(filterLogs(logs, c.Query("path"), c.Query("method"), c.Query("status")))
	totalLogs := 0
	for _, g := range groups {
		totalLogs += g.Count
	}

	start := min((page-1)*pageSize, len(groups))
	end := min(start+pageSize, len(groups))

	return c.JSON(LogsResponse{
		Groups:      groups[start:end],
		TotalLogs:   totalLogs,
		TotalGroups: len(groups),
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  (len(groups) + pageSize - 1) / pageSize,
		DateFrom:    from,
		DateTo:      to,
	})
}

func (h *LogController) GetLogStats(c *fiber.Ctx) error {
	from, to, err := h.window(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	logs, err := h.read(from, to)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var successful, failed int
	var total, minLatency, maxLatency float64
	methodStats := make(map[string]int)
	statusStats := make(map[int]int)
	pathStats := make(map[string]int)

	for i, l := range logs {
		if l.Status >= 200 && l.Status < 300 {
			successful++
		} else if l.Status >= 400 {
			failed++
		}
		total += l.LatencyMS
		if i == 0 || l.LatencyMS < minLatency {
			minLatency = l.LatencyMS
		}
		maxLatency = max(maxLatency, l.LatencyMS)
		methodStats[l.Method]++
		statusStats[l.Status]++
		pathStats[l.Path]++
	}

	var avg, successRate float64
	if n := len(logs); n > 0 {
		avg = total / float64(n)
		successRate = float64(successful) / float64(n) * 100
	}

	type pathCount struct {
		Path  string `json:"path"`
		Count int    `json:"count"`
	}
	topPaths := make([]pathCount, 0, len(pathStats))
	for p, n := range pathStats {
		topPaths = append(topPaths, pathCount{p, n})
	}
	sort.Slice(topPaths, func(i, j int) bool {
		if topPaths[i].Count != topPaths[j].Count {
			return topPaths[i].Count > topPaths[j].Count
		}
		return topPaths[i].Path < topPaths[j].Path
	})
	if len(topPaths) > 10 {
		topPaths = topPaths[:10]
	}

	return c.JSON(fiber.Map{
		"total_requests":      len(logs),
		"successful_requests": successful,
		"error_requests":      failed,
		"success_rate":        successRate,
		"avg_latency_ms":      avg,
		"min_latency_ms":      minLatency,
		"max_latency_ms":      maxLatency,
		"method_stats":        methodStats,
		"status_stats":        statusStats,
		"top_paths":           topPaths,
		"date_from":           from,
		"date_to":             to,
	})
}

// window reads date_from/date_to (YYYY-MM-DD, inclusive). Both absent means today.
func (h *LogController) window(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := h.now().In(h.loc)
	fromStr, toStr := c.Query("date_from"), c.Query("date_to")
	if fromStr == "" && toStr == "" {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
		return day, day.AddDate(0, 0, 1), nil
	}

	from := time.Time{}
	to := now
	if fromStr != "" {
		d, err := time.ParseInLocation("2006-01-02", fromStr, h.loc)
		if err != nil {
			return from, to, &RequestError{Message: "invalid date_from format, use YYYY-MM-DD"}
		}
		from = d
	}
	if toStr != "" {
		d, err := time.ParseInLocation("2006-01-02", toStr, h.loc)
		if err != nil {
			return from, to, &RequestError{Message: "invalid date_to format, use YYYY-MM-DD"}
		}
		to = d.AddDate(0, 0, 1)
	}
	return from, to, nil
}

// read returns entries in [from, to). A missing file is an empty log.
func (h *LogController) read(from, to time.Time) ([]LogEntry, error) {
	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open request log: %w", err)
	}
	defer file.Close()

	var logs []LogEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Method == "" {
			continue
		}
		if !entry.Timestamp.Before(from) && entry.Timestamp.Before(to) {
			logs = append(logs, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read request log: %w", err)
	}
	return logs, nil
}

func filterLogs(logs []LogEntry, path, method, status string) []LogEntry {
	code, statusErr := strconv.Atoi(status)
	var filtered []LogEntry
	for _, l := range logs {
		if path != "" && !strings.Contains(strings.ToLower(l.Path), strings.ToLower(path)) {
			continue
		}
		if method != "" && !strings.EqualFold(l.Method, method) {
			continue
		}
		if status != "" && statusErr == nil && l.Status != code {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered
}

func groupLogs(logs []LogEntry) []LogGroup {
	byKey := make(map[string]*LogGroup)
	var order []string
	for _, l := range logs {
		key := l.Method + " " + l.Path
		g, ok := byKey[key]
		if !ok {
			g = &LogGroup{Path: l.Path, Method: l.Method, MinLatency: l.LatencyMS}
			byKey[key] = g
			order = append(order, key)
		}
		g.Count++
		g.Logs = append(g.Logs, l)
		g.AvgLatency += (l.LatencyMS - g.AvgLatency) / float64(g.Count)
		g.MinLatency = min(g.MinLatency, l.LatencyMS)
		g.MaxLatency = max(g.MaxLatency, l.LatencyMS)
		ok2xx := 0.0
		if l.Status >= 200 && l.Status < 300 {
			ok2xx = 1
		}
		g.SuccessRate += (ok2xx - g.SuccessRate) / float64(g.Count)
	}

	groups := make([]LogGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, *byKey[k])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}
