package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// LotteryDrawCommand runs a draw and shows the winners
func LotteryDrawCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdLotteryDraw,
		Description:              "Draw the next lottery winner",
		DefaultMemberPermissions: &adminPermissions,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			result, err := client.Draw(getInteractionUser(i).ID)
			if err != nil {
				return nil, err
			}
			return drawResultEmbed(result), nil
		}, ResponseConfig{Title: "🎉 Lottery Draw", Color: ColorWinner})
	}

	return cmd, handler
}

// LotteryStateCommand shows the current lottery settings
func LotteryStateCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdLotteryState,
		Description: "Show the lottery settings and draw lock",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			state, err := client.GetState()
			if err != nil {
				return nil, err
			}
			return stateEmbed("📋 Lottery State", state), nil
		}, ResponseConfig{Title: "📋 Lottery State", Color: ColorInfo})
	}

	return cmd, handler
}

// LotteryResetCommand clears the current draw so screens return to waiting
func LotteryResetCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdLotteryReset,
		Description:              "Clear the current draw and release the draw lock",
		DefaultMemberPermissions: &adminPermissions,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			state, err := client.Reset(getInteractionUser(i).ID)
			if err != nil {
				return nil, err
			}
			return stateEmbed("🔄 Lottery Reset", state), nil
		}, ResponseConfig{Title: "🔄 Lottery Reset", Color: ColorSuccess})
	}

	return cmd, handler
}

// LotteryHistoryCommand lists recent winners
func LotteryHistoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minLimit := 1.0
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdLotteryHistory,
		Description: "List recent lottery winners",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptLimit,
				Description: fmt.Sprintf("How many draws to show (default: %d)", defaultHistoryLimit),
				Required:    false,
				MinValue:    &minLimit,
				MaxValue:    maxHistoryLimit,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			limit := defaultHistoryLimit
			if opt, ok := getOptions(i)[OptLimit]; ok {
				limit = int(opt.IntValue())
			}
			if limit < 1 || limit > maxHistoryLimit {
				limit = defaultHistoryLimit
			}

			records, err := client.History(limit)
			if err != nil {
				return nil, err
			}
			return createEmbed("📜 Lottery History", formatHistory(records), ColorInfo, FooterLotteryAdmin), nil
		}, ResponseConfig{Title: "📜 Lottery History", Color: ColorInfo})
	}

	return cmd, handler
}

// LotteryModeCommand switches the reveal animation
func LotteryModeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.AnimationModes))
	for _, m := range domain.AnimationModes {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: modeLabel(m), Value: string(m)})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdLotteryMode,
		Description:              "Choose how screens reveal the winner",
		DefaultMemberPermissions: &adminPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptMode,
				Description: "Animation mode",
				Required:    true,
				Choices:     choices,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			opt, ok := getOptions(i)[OptMode]
			if !ok {
				return nil, fmt.Errorf("missing required %s argument", OptMode)
			}
			state, err := client.SetControl(getInteractionUser(i).ID, domain.ControlAnimationMode, opt.StringValue())
			if err != nil {
				return nil, err
			}
			return stateEmbed("🎞️ Animation Mode Updated", state), nil
		}, ResponseConfig{Title: "🎞️ Animation Mode Updated", Color: ColorSuccess})
	}

	return cmd, handler
}

// LotteryActiveCommand opens or closes the lottery on the screens
func LotteryActiveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdLotteryActive,
		Description:              "Show or hide the lottery on the screens",
		DefaultMemberPermissions: &adminPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        OptEnabled,
				Description: "Whether the lottery is active",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			opt, ok := getOptions(i)[OptEnabled]
			if !ok {
				return nil, fmt.Errorf("missing required %s argument", OptEnabled)
			}
			state, err := client.SetControl(getInteractionUser(i).ID, domain.ControlIsActive, opt.BoolValue())
			if err != nil {
				return nil, err
			}
			return stateEmbed("🎪 Lottery Updated", state), nil
		}, ResponseConfig{Title: "🎪 Lottery Updated", Color: ColorSuccess})
	}

	return cmd, handler
}

func drawResultEmbed(result *domain.DrawResult) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, w := range result.Winners {
		fmt.Fprintf(&b, "🏆 **%s** (%d photos)\n", winnerName(w), w.PhotoCountAtDraw)
	}
	fmt.Fprintf(&b, "\nOut of %d eligible guests.", result.ParticipantsCount)

	embed := createEmbed("🎉 Lottery Draw", b.String(), ColorWinner, FooterLotteryAdmin)
	if len(result.Winners) > 0 && result.Winners[0].WinnerPhotoURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: result.Winners[0].WinnerPhotoURL}
	}
	return embed
}

func stateEmbed(title string, state *domain.LotteryState) *discordgo.MessageEmbed {
	weighting := fmt.Sprintf("capped at %d photos", state.MaxPhotosForWeighting)
	if state.EqualProbability() {
		weighting = "equal chance"
	}
	current := "none"
	if state.CurrentDrawID != nil {
		current = state.CurrentDrawID.String()
	}

	embed := createEmbed(title, "", ColorInfo, FooterLotteryAdmin)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Active", Value: yesNo(state.IsActive), Inline: true},
		{Name: "Drawing", Value: yesNo(state.IsDrawing), Inline: true},
		{Name: "Mode", Value: modeLabel(state.AnimationMode), Inline: true},
		{Name: "Winners per draw", Value: fmt.Sprintf("%d", state.WinnersPerDraw), Inline: true},
		{Name: "Weighting", Value: weighting, Inline: true},
		{Name: "Notify winner", Value: yesNo(state.NotifyWinnerEnabled), Inline: true},
		{Name: "Current draw", Value: current},
	}
	return embed
}

func formatHistory(records []domain.HistoryRecord) string {
	if len(records) == 0 {
		return MsgNoHistory
	}
	var b strings.Builder
	for idx, r := range records {
		fmt.Fprintf(&b, "%d. **%s** <t:%d:R> (%d photos, %d guests)\n",
			idx+1, winnerName(r), r.DrawTime.Unix(), r.PhotoCountAtDraw, r.ParticipantsCount)
	}
	return b.String()
}

func winnerName(r domain.HistoryRecord) string {
	if r.WinnerDisplayName != "" {
		return r.WinnerDisplayName
	}
	return r.WinnerUserID
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// modeLabel is the display form of an animation mode, e.g. "Tournament"
func modeLabel(m domain.AnimationMode) string {
	return cases.Title(language.English).String(string(m))
}
