package search

import (
	"github.com/poiesic/scout/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterParse(intent *core.Intent)
	AfterCategorySearch(category core.ChunkType, actorIDs []core.ActorID)
	CategoryDegraded(category core.ChunkType, err error)
	AfterCombination(actorIDs []core.ActorID)
	AfterRerank(candidates []*core.Candidate)
	Finish(results []core.Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                       {}
func (n *noopMonitor) AfterParse(_ *core.Intent)                            {}
func (n *noopMonitor) AfterCategorySearch(_ core.ChunkType, _ []core.ActorID) {}
func (n *noopMonitor) CategoryDegraded(_ core.ChunkType, _ error)           {}
func (n *noopMonitor) AfterCombination(_ []core.ActorID)                    {}
func (n *noopMonitor) AfterRerank(_ []*core.Candidate)                      {}
func (n *noopMonitor) Finish(_ []core.Result)                               {}
