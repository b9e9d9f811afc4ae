package services

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"roomrent/models"
)

// minCitySimilarity is the lowest similarity a "did you mean" city may have
const minCitySimilarity = 0.5

// normalizeInput lowercases s and strips accents
func normalizeInput(s string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
}

// filterByCity keeps rooms whose city contains query, ignoring case and accents
func filterByCity(rooms []models.Room, query string) []models.Room {
	q := normalizeInput(query)
	if q == "" {
		return rooms
	}
	filtered := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if strings.Contains(normalizeInput(room.City), q) {
			filtered = append(filtered, room)
		}
	}
	return filtered
}

// suggestCity returns the listed city closest to query, or "" when none is close enough
func suggestCity(query string, rooms []models.Room) string {
	q := normalizeInput(query)
	if q == "" {
		return ""
	}

	cities := make(map[string]string)
	for _, room := range rooms {
		if n := normalizeInput(room.City); n != "" {
			cities[n] = room.City
		}
	}
	if len(cities) == 0 {
		return ""
	}

	keys := make([]string, 0, len(cities))
	for k := range cities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := closestmatch.New(keys, []int{2, 3}).Closest(q)
	if best == "" || similarity(q, best) < minCitySimilarity {
		return ""
	}
	return cities[best]
}

func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
