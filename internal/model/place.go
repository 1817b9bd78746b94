package model

// Place is one point-of-interest record (mosque, restaurant or shop) as the
// Vegukin API returns it.
type Place struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	DistanceKM  float64 `json:"distance"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	KakaoMapURL string  `json:"kakaoMapUrl"`
	NaverMapURL string  `json:"naverMapUrl"`
	Photo       string  `json:"photo"`
	ReviewCount int     `json:"reviewCount"`
}
