// Package docs embeds the spt user documentation.
//
// readme.md is the index: every topic is listed there on a line like
//
//	* budget: set the total investment and follow what remains of it
//
// and lives in the file of the same name, budget.md.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
)

//go:embed *.md
var pages embed.FS

// Index is the name of the page listing the topics.
const Index = "readme"

// Topic is a documentation page listed in the index.
type Topic struct {
	Name        string
	Description string
}

var topicLine = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Topics returns the topics listed in the index, in order.
func Topics() ([]Topic, error) {
	index, err := pages.ReadFile(Index + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	scanner := bufio.NewScanner(bytes.NewReader(index))
	for scanner.Scan() {
		if m := topicLine.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: strings.TrimSpace(m[1]), Description: strings.TrimSpace(m[2])})
		}
	}
	return topics, scanner.Err()
}

// Names returns the names of the indexed topics.
func Names() []string {
	topics, _ := Topics()
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// Page returns the markdown of the topic name, or of the index.
func Page(name string) (string, error) {
	content, err := pages.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q, want one of: %s", name, strings.Join(Names(), ", "))
	}
	return string(content), nil
}

// Pages returns the markdown of several topics, one after the other. "*"
// stands for every indexed topic, in index order.
func Pages(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			expanded = Names()
		}
		for _, n := range expanded {
			content, err := Page(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
