package console

import (
	"fmt"
	"sort"
	"strings"

	"hellbingo/models"
)

func (c *Console) printCard(snap *models.Snapshot) {
	for row, indices := range models.RowIndices {
		cells := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= len(snap.CardNumbers) {
				continue
			}
			if snap.CardMatched[idx] {
				cells = append(cells, fmt.Sprintf("[%2d]", snap.CardNumbers[idx]))
			} else {
				cells = append(cells, fmt.Sprintf(" %2d ", snap.CardNumbers[idx]))
			}
		}
		suffix := ""
		if snap.RowsCompleted[row] {
			suffix = "  paid"
		}
		c.printf("  %s%s\n", strings.Join(cells, " "), suffix)
	}
}

func (c *Console) printRows(rows []int) {
	for _, row := range rows {
		c.printf("Row %d complete! +%d ink.\n", row+1, models.RowBonusReward)
	}
}

func (c *Console) printStock(snap *models.Snapshot) {
	parts := make([]string, 0, len(models.AllPowerUps))
	for _, kind := range models.AllPowerUps {
		parts = append(parts, fmt.Sprintf("%s x%d", kind, snap.Stock[kind]))
	}
	c.printf("Stock: %s\n", strings.Join(parts, ", "))
}

func (c *Console) printShop(snap *models.Snapshot) {
	c.printf("The shop is open (%d ink):\n", snap.Currency)
	for _, kind := range models.AllPowerUps {
		c.printf("  %-9s %3d ink  (have %d)\n", kind, kind.Cost(), snap.Stock[kind])
	}
	c.printf("Type 'buy <item>' or 'night' when ready.\n")
}

func (c *Console) printResolution(res *models.Resolution) {
	switch res.Outcome {
	case models.OutcomePlayerVictory:
		c.printf("BINGO! You escape hell on night %d.\n", res.Night)
	case models.OutcomePlayerEliminated:
		c.printf("%s escapes. You are executed on night %d.\n", res.WinnerName, res.Night)
	case models.OutcomeSurvived:
		if res.ShieldSaved {
			c.printf("Your shield holds. ")
		}
		c.printf("%s escapes and %s is executed. You survive night %d (+%d ink).\n",
			res.WinnerName, res.LoserName, res.Night, res.CurrencyDelta)
	}
	c.printf("Type 'continue'.\n")
}

func (c *Console) printStats(summary *models.CampaignStats, recent []*models.CampaignResult) {
	c.printf("Campaigns: %d  Victories: %d  Executions: %d  Abandoned: %d\n",
		summary.TotalCampaigns, summary.Victories, summary.Eliminations, summary.Abandoned)
	c.printf("Win rate: %.1f%%  Best night: %d  Average nights: %.2f  Richest finish: %d\n",
		summary.WinPercentage, summary.BestNight, summary.AverageNights, summary.RichestFinish)
	for _, r := range recent {
		c.printf("  %s  %-10s night %-3d ink %d\n",
			r.EndedAt.Local().Format("2006-01-02 15:04"), r.Result, r.NightsReached, r.FinalCurrency)
	}
}

func (c *Console) printHelp(commands map[string]command) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		c.printf("  %-30s %s\n", cmd.usage, cmd.help)
	}
	c.printf("  %-30s %s\n", "quit", "leave the game")
}
