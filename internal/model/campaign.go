// internal/model/campaign.go
package model

type Campaign struct {
    Name          string `json:"name"`
    File          string `json:"file"`
    CustomerCount int    `json:"customer_count"`
}

// CampaignStats summarizes call progress for one campaign.
type CampaignStats struct {
    Total     int             `json:"total"`
    Called    int             `json:"called"`
    FollowUps int             `json:"follow_ups"`
    Entries   int             `json:"entries"`
    ByOutcome map[Outcome]int `json:"by_outcome"`
}

func NewCampaignStats(total int) CampaignStats {
    stats := CampaignStats{Total: total, ByOutcome: map[Outcome]int{}}
    for _, o := range Outcomes {
        stats.ByOutcome[o] = 0
    }
    return stats
}
