package location

type Country struct {
	ID   string `gorm:"column:id;type:text;primaryKey"`
	Name string `gorm:"column:name;type:varchar(255);not null"`
}

func (Country) TableName() string {
	return "countries"
}

type State struct {
	ID        string `gorm:"column:id;type:text;primaryKey"`
	Name      string `gorm:"column:name;type:varchar(255);not null"`
	CountryID string `gorm:"column:country_id;type:text;index"`
}

func (State) TableName() string {
	return "states"
}

type City struct {
	ID      string `gorm:"column:id;type:text;primaryKey"`
	Name    string `gorm:"column:name;type:varchar(255);not null"`
	StateID string `gorm:"column:state_id;type:text;index"`
}

func (City) TableName() string {
	return "cities"
}
