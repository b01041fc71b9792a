package catalog

// Defaults used when no preference has been stored.
const (
	DefaultAnnualGoal               = 15
	DefaultSimultaneousReadingLimit = 3
	DefaultFavoriteGenre            = "Fiction"
)

// Configuration holds the reader's goals and preferences.
// Setters validate before assigning, so a failed call leaves the value untouched.
type Configuration struct {
	annualGoal               int
	simultaneousReadingLimit int
	favoriteGenre            string
}

// DefaultConfiguration returns the out-of-the-box preferences.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		annualGoal:               DefaultAnnualGoal,
		simultaneousReadingLimit: DefaultSimultaneousReadingLimit,
		favoriteGenre:            DefaultFavoriteGenre,
	}
}

// NewConfiguration validates and builds a configuration.
func NewConfiguration(annualGoal, simultaneousReadingLimit int, favoriteGenre string) (*Configuration, error) {
	if err := validateAnnualGoal(annualGoal); err != nil {
		return nil, err
	}
	if err := validateReadingLimit(simultaneousReadingLimit); err != nil {
		return nil, err
	}
	return &Configuration{
		annualGoal:               annualGoal,
		simultaneousReadingLimit: simultaneousReadingLimit,
		favoriteGenre:            favoriteGenre,
	}, nil
}

func (c *Configuration) AnnualGoal() int               { return c.annualGoal }
func (c *Configuration) SimultaneousReadingLimit() int { return c.simultaneousReadingLimit }
func (c *Configuration) FavoriteGenre() string         { return c.favoriteGenre }

func (c *Configuration) SetAnnualGoal(goal int) error {
	if err := validateAnnualGoal(goal); err != nil {
		return err
	}
	c.annualGoal = goal
	return nil
}

func (c *Configuration) SetSimultaneousReadingLimit(limit int) error {
	if err := validateReadingLimit(limit); err != nil {
		return err
	}
	c.simultaneousReadingLimit = limit
	return nil
}

func (c *Configuration) SetFavoriteGenre(genre string) {
	c.favoriteGenre = genre
}

func validateAnnualGoal(goal int) error {
	if goal <= 0 {
		return newError(ErrValidation, "annual target cannot be less than or equal to zero")
	}
	return nil
}

func validateReadingLimit(limit int) error {
	if limit <= 0 {
		return newError(ErrValidation, "simultaneous readings cannot be less than or equal to zero")
	}
	return nil
}
