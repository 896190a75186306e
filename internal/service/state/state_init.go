package state

type seedFunc func(s *State) error

var seedFuncs = []seedFunc{
	seedRecentProjects,
}

func (s *State) seed() error {
	for _, f := range seedFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}
