package lottery

import "github.com/osse101/WeddingBot_Go/internal/domain"

// BuildEligibility derives one participant per distinct owner of a public photo.
// Users with no public photos never appear. Order follows first appearance in photos.
func BuildEligibility(photos []domain.Photo) []domain.EligibleParticipant {
	index := make(map[string]int)
	participants := make([]domain.EligibleParticipant, 0)

	for _, p := range photos {
		if !p.IsPublic || p.OwnerUserID == "" {
			continue
		}
		if i, ok := index[p.OwnerUserID]; ok {
			participants[i].PublicPhotoCount++
			continue
		}
		index[p.OwnerUserID] = len(participants)
		participants = append(participants, domain.EligibleParticipant{
			UserID:           p.OwnerUserID,
			DisplayName:      p.DisplayName,
			AvatarURL:        p.AvatarURL,
			PublicPhotoCount: 1,
		})
	}

	return participants
}

// PhotosByOwner groups public photos by their owner
func PhotosByOwner(photos []domain.Photo) map[string][]domain.Photo {
	out := make(map[string][]domain.Photo)
	for _, p := range photos {
		if !p.IsPublic {
			continue
		}
		out[p.OwnerUserID] = append(out[p.OwnerUserID], p)
	}
	return out
}

// ExcludeWinners drops participants contained in the exclusion set
func ExcludeWinners(participants []domain.EligibleParticipant, excluded domain.ExclusionSet) []domain.EligibleParticipant {
	if len(excluded) == 0 {
		return participants
	}
	out := make([]domain.EligibleParticipant, 0, len(participants))
	for _, p := range participants {
		if !excluded.Contains(p.UserID) {
			out = append(out, p)
		}
	}
	return out
}
