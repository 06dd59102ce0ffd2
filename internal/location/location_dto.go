package location

type LocationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
