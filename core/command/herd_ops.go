package command

// CreateHerd creates a new, empty herd.
type CreateHerd struct {
	Name        string
	Description string
}

func (c *CreateHerd) CommandName() string {
	return "CreateHerd"
}

// AddMember adds one animal to a herd.
type AddMember struct {
	Herd   string
	Animal string
}

func (c *AddMember) CommandName() string {
	return "AddMember"
}

// RemoveMember removes one animal from a herd.
type RemoveMember struct {
	Herd   string
	Animal string
}

func (c *RemoveMember) CommandName() string {
	return "RemoveMember"
}

// MoveMember moves one animal from the source herd to the target herd
// atomically.
type MoveMember struct {
	Source string
	Target string
	Animal string
}

func (c *MoveMember) CommandName() string {
	return "MoveMember"
}

// MergeHerds folds the archive herd's members into the keep herd and
// archives the losing side.
type MergeHerds struct {
	Keep    string
	Archive string
}

func (c *MergeHerds) CommandName() string {
	return "MergeHerds"
}

// SplitMembers moves a subset of the source herd's members into the
// target herd, creating the target if it does not exist.
type SplitMembers struct {
	Source  string
	Target  string
	Animals []string
}

func (c *SplitMembers) CommandName() string {
	return "SplitMembers"
}
