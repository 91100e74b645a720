package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Entry is one parsed line of the JSON diagnostic log.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Err     string
	// Fields holds the remaining string-able attributes, sorted by key.
	Fields []Field
	// Raw is set when the line is not a JSON object.
	Raw string
}

// Field is an extra key/value attribute of an entry.
type Field struct {
	Key   string
	Value string
}

// Read returns at most maxLines parsed entries from the end of the file at
// path. A non-positive maxLines reads the whole file. A missing file yields
// no entries.
func Read(path string, maxLines int) ([]Entry, error) {
	lines, err := tail(path, maxLines)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse decodes a single zerolog JSON line. Lines that are not JSON are
// returned as Raw entries.
func Parse(line string) Entry {
	var obj map[string]any
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return Entry{Raw: line}
	}

	entry := Entry{}
	for key, value := range obj {
		text := stringify(value)
		switch key {
		case "time":
			if ts, err := time.Parse(time.RFC3339Nano, text); err == nil {
				entry.Time = ts
			}
		case "level":
			entry.Level = text
		case "message":
			entry.Message = text
		case "error":
			entry.Err = text
		default:
			entry.Fields = append(entry.Fields, Field{Key: key, Value: text})
		}
	}
	sort.Slice(entry.Fields, func(i, j int) bool { return entry.Fields[i].Key < entry.Fields[j].Key })
	return entry
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// tail keeps the last maxLines lines in a ring buffer.
func tail(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
