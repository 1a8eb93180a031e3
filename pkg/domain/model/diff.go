package model

// CommitDiff is the set of file paths changed between the most recent
// commit and its first parent. For a parentless commit it holds every
// file in the commit tree.
type CommitDiff struct {
	Files []string
}

// Contains reports whether path appears exactly in the diff
func (d *CommitDiff) Contains(path string) bool {
	for _, f := range d.Files {
		if f == path {
			return true
		}
	}
	return false
}
