package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/kiara-inc/autodoc/internal/docplan"
)

// Changes computes the ChangeSet between two revisions. Rename detection is
// on; a rename contributes a single change carrying the new path.
func (c *Client) Changes(ctx context.Context, fromRev, toRev string) (docplan.ChangeSet, error) {
	from, err := c.resolveCommit(fromRev)
	if err != nil {
		return docplan.ChangeSet{}, err
	}
	to, err := c.resolveCommit(toRev)
	if err != nil {
		return docplan.ChangeSet{}, err
	}

	fromTree, err := from.Tree()
	if err != nil {
		return docplan.ChangeSet{}, fmt.Errorf("read tree %s: %w", fromRev, err)
	}
	toTree, err := to.Tree()
	if err != nil {
		return docplan.ChangeSet{}, fmt.Errorf("read tree %s: %w", toRev, err)
	}

	diff, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return docplan.ChangeSet{}, fmt.Errorf("diff %s..%s: %w", fromRev, toRev, err)
	}

	cs := docplan.ChangeSet{Changes: make([]docplan.Change, 0, len(diff))}
	for _, ch := range diff {
		action, aerr := ch.Action()
		if aerr != nil {
			return docplan.ChangeSet{}, fmt.Errorf("classify change: %w", aerr)
		}
		switch action {
		case merkletrie.Insert:
			cs.Changes = append(cs.Changes, docplan.Change{Path: ch.To.Name, Kind: docplan.ChangeAdded})
		case merkletrie.Delete:
			cs.Changes = append(cs.Changes, docplan.Change{Path: ch.From.Name, Kind: docplan.ChangeDeleted})
		case merkletrie.Modify:
			kind := docplan.ChangeModified
			if ch.From.Name != ch.To.Name {
				kind = docplan.ChangeRenamed
			}
			cs.Changes = append(cs.Changes, docplan.Change{Path: ch.To.Name, Kind: kind})
		}
	}
	return cs, nil
}

// CommitLog returns up to max log lines for commits reachable from toRev,
// formatted "hash | date | subject" (newest first). When fromRev is known the
// walk stops there, yielding the log of the pushed range only.
func (c *Client) CommitLog(fromRev, toRev string, max int) ([]string, error) {
	to, err := c.resolveCommit(toRev)
	if err != nil {
		return nil, err
	}

	stopAt := ""
	if fromRev != "" {
		if from, ferr := c.resolveCommit(fromRev); ferr == nil {
			stopAt = from.Hash.String()
		}
	}

	iter, err := c.repo.Log(&gogit.LogOptions{From: to.Hash})
	if err != nil {
		return nil, fmt.Errorf("read log from %s: %w", toRev, err)
	}
	defer iter.Close()

	lines := make([]string, 0, max)
	for len(lines) < max {
		commit, nerr := iter.Next()
		if nerr != nil {
			break
		}
		if commit.Hash.String() == stopAt {
			break
		}
		lines = append(lines, fmt.Sprintf("%s | %s | %s",
			commit.Hash.String()[:7],
			commit.Author.When.Format("2006-01-02"),
			firstLine(commit.Message)))
	}
	return lines, nil
}

func firstLine(msg string) string {
	for i := 0; i < len(msg); i++ {
		if msg[i] == '\n' {
			return msg[:i]
		}
	}
	return msg
}
