// Command cardcheck validates card collection files and prints how each
// card will be classified.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"mainframe/cards"
	"mainframe/render"
	"mainframe/theme"
)

var (
	domain = flag.String("domain", cards.DefaultDomain, "site domain used for status classification")
	plain  = flag.Bool("plain", false, "print without colors")
)

func main() {
	flag.Parse()
	files := flag.Args()
	if len(files) == 0 {
		files = []string{"blog.json", "links.json"}
	}

	failed := false
	for _, path := range files {
		if err := checkFile(os.Stdout, path, *domain, *plain); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func checkFile(w io.Writer, path, domain string, plain bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	list, problems, err := check(f, domain)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d cards\n", path, len(list.Rows))
	if plain {
		fmt.Fprintln(w, list.RenderToString())
	} else {
		fmt.Fprintln(w, list.RenderANSI())
	}
	for _, p := range problems {
		fmt.Fprintf(w, "  warning: %s\n", p)
	}
	return nil
}

// check decodes a collection and builds the status table. Cards missing a
// url or title are reported as problems, not errors, since the site still
// renders them.
func check(r io.Reader, domain string) (*render.Table, []string, error) {
	var list []cards.Card
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, nil, fmt.Errorf("invalid collection: %w", err)
	}

	th := theme.Current()
	t := render.NewTable("#", "Status", "Title", "Target")
	t.SetAlignment(0, render.AlignRight)

	var problems []string
	statuses := make([]cards.Status, len(list))
	for i, c := range list {
		statuses[i] = cards.StatusOf(c, domain)
		target := "external"
		if cards.IsLocalArticle(c.URL) {
			target = "article"
		}
		t.AddRow(fmt.Sprint(i+1), string(statuses[i]), render.Truncate(c.Title, 40), target)

		if strings.TrimSpace(c.URL) == "" {
			problems = append(problems, fmt.Sprintf("card %d has no url", i+1))
		}
		if strings.TrimSpace(c.Title) == "" {
			problems = append(problems, fmt.Sprintf("card %d has no title", i+1))
		}
	}
	t.RowStyle = func(row int) render.Style {
		return th.StatusColor(string(statuses[row])).Style()
	}
	return t, problems, nil
}
