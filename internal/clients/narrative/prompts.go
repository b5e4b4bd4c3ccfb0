package narrative

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

type cardPromptText struct {
	system string
	// landing takes level name, level id, intention, square name, square id
	landing string
	// theme takes the theme three times and the intention
	theme string
	// source takes the source name
	source string
	rules  string
}

type prompt struct {
	system string
	user   string
}

func (c *catalog) buildCardPrompt(input *GenerateCardInput, theme string) prompt {
	var b strings.Builder

	fmt.Fprintf(&b, c.cardPrompt.landing,
		c.levelNames[input.Level], input.Level,
		input.Intention,
		c.squareNames[input.Square], input.Square,
	)
	b.WriteString("\n\n")

	if theme != "" {
		fmt.Fprintf(&b, c.cardPrompt.theme, theme, theme, theme, input.Intention)
		b.WriteString("\n\n")
	}
	if input.Source.IsValid() {
		fmt.Fprintf(&b, c.cardPrompt.source, c.sourceNames[input.Source])
		b.WriteString("\n\n")
	}
	b.WriteString(c.cardPrompt.rules)

	return prompt{system: c.cardPrompt.system, user: b.String()}
}

func (c *catalog) buildGraduationPrompt(input *GenerateGraduationMessageInput) prompt {
	return prompt{
		system: c.cardPrompt.system,
		user:   fmt.Sprintf(c.graduation, c.levelNames[input.Level], input.Intention),
	}
}

var englishCatalog = &catalog{
	tag: supportedTags[0],
	levelNames: map[transformation.Level]string{
		transformation.LevelPhysical:  "Physical Level",
		transformation.LevelEmotional: "Emotional Level",
		transformation.LevelMental:    "Mental Level",
		transformation.LevelSpiritual: "Spiritual Level",
	},
	squareNames: map[transformation.SquareType]string{
		transformation.SquareInspiration: "Inspiration",
		transformation.SquareObstacle:    "Obstacle",
		transformation.SquareAngel:       "Angel",
		transformation.SquareService:     "Service",
		transformation.SquareIntuition:   "Intuition",
		transformation.SquareUniverse:    "Universal Feedback",
		transformation.SquareBlessing:    "Blessing",
	},
	sourceNames: map[transformation.CardSource]string{
		transformation.CardSourceEnvelope: "their subconscious envelope",
		transformation.CardSourceDeck:     "the common deck",
	},
	themes: map[transformation.Level][]string{
		transformation.LevelPhysical: {
			"Naturalness", "Discipline", "Boldness", "Timing", "Achievement", "Reassurance",
		},
		transformation.LevelEmotional: {
			"Courage", "Acceptance", "Wellbeing", "Innocence", "Spontaneity",
			"Nurturing", "Validation", "Play", "Whimsy", "Empowerment",
		},
		transformation.LevelMental: {
			"Expansion", "Guidance", "Organization", "Commitment",
			"Illumination", "Affirmation", "Light", "Assistance",
		},
		transformation.LevelSpiritual: {
			"Abundance", "Flow", "Divinity", "Service", "Meditation",
			"Equality", "Presence", "Capability", "Magnificence", "Awakening",
		},
	},
	fallbackCard: transformation.Card{
		Title:       "Silent Whisper",
		Description: "The universe is silent right now, but your inner voice knows the way.",
		Action:      "Reflect on your intention.",
		Effect:      transformation.Effect{Awareness: 1},
	},
	graduationFallback: "You have advanced to the next level.",
	graduationEmpty:    "You have transcended this level.",
	cardPrompt: cardPromptText{
		system: "You are the Game Master of the Transformation Game. " +
			"Your tone is mystical and supportive, but also honest and direct.",
		landing: `The player is on the "%s" (%s).
Their intention is: "%s".
They landed on the "%s" (%s) square.
Generate one card with concrete guidance related to their intention and current level. Reply in English.`,
		theme: `IMPORTANT: This is an Inspiration card. You MUST use the Awareness Token "%s" as the core theme and the title of this card.
Explain how "%s" helps the player with their intention. Title: "%s". Intention: "%s".`,
		source: `The player drew this card from %s. Let that colour the framing, not the effect.`,
		rules: `Return JSON only, exactly in this shape:
{"title": "...", "description": "...", "action": "...", "effect": {"awareness": 0, "pain": 0, "service": 0}}
Effect rules per square:
1. INSPIRATION: gain 1-3 awareness, 0 pain. The title must be the awareness token given above.
2. OBSTACLE: gain 1-4 pain, 0 awareness. The description names the mental or emotional obstacle blocking the intention.
3. ANGEL: 0 awareness, 0 pain. The title is an angelic quality such as "Compassion", "Courage" or "Patience". The description is full of support and love.
4. SERVICE: gain 1 service. The action describes an act of service to others or the world.
5. BLESSING: gain 1 service and 1-2 awareness. The action describes sharing awareness with others.
6. INTUITION: judge whether the player's intuition is right. Right: 1-2 awareness. Wrong: 1 pain. Say clearly in the description which one it is.
7. UNIVERSAL FEEDBACK: the universe mirrors a choice made with free will. Give either 1-2 awareness or remove 1-2 pain (negative pain).
Do not include any text outside the JSON object.`,
	},
	graduation: `The player has just completed the %s of the Transformation Game.
Their intention is: "%s".
Write a short congratulation of two sentences affirming their growth on this level. Reply in English with plain text.`,
}

var chineseCatalog = &catalog{
	tag: supportedTags[1],
	levelNames: map[transformation.Level]string{
		transformation.LevelPhysical:  "身体层面",
		transformation.LevelEmotional: "情绪层面",
		transformation.LevelMental:    "心智层面",
		transformation.LevelSpiritual: "灵性层面",
	},
	squareNames: map[transformation.SquareType]string{
		transformation.SquareInspiration: "灵感",
		transformation.SquareObstacle:    "障碍",
		transformation.SquareAngel:       "天使",
		transformation.SquareService:     "服务",
		transformation.SquareIntuition:   "觉知闪电",
		transformation.SquareUniverse:    "宇宙回应",
		transformation.SquareBlessing:    "祝福",
	},
	sourceNames: map[transformation.CardSource]string{
		transformation.CardSourceEnvelope: "信封",
		transformation.CardSourceDeck:     "卡池",
	},
	themes: map[transformation.Level][]string{
		transformation.LevelPhysical: {
			"天然", "纪律", "大胆", "时间", "成就", "放心",
		},
		transformation.LevelEmotional: {
			"勇敢", "接受", "身心健康", "童真", "即兴", "培育", "验证", "玩乐", "异想天开", "赋权/培力",
		},
		transformation.LevelMental: {
			"延展", "指导", "组织", "承诺", "照亮/启迪", "肯定", "光", "协助",
		},
		transformation.LevelSpiritual: {
			"丰富", "流", "神性", "服务", "静心/冥想", "平等", "专注当下", "能力", "壮丽", "觉醒",
		},
	},
	fallbackCard: transformation.Card{
		Title:       "静默的低语",
		Description: "宇宙此刻保持沉默，但你内心的声音知道方向。",
		Action:      "反思你的意图。",
		Effect:      transformation.Effect{Awareness: 1},
	},
	graduationFallback: "你已晋级到下一个层面。",
	graduationEmpty:    "你已经超越了这个层面。",
	cardPrompt: cardPromptText{
		system: `你现在是"蜕变游戏" (Transformation Game) 的游戏引导者 (Game Master)。语气要神秘、支持性强，但也要诚实直接。`,
		landing: `玩家目前处于 "%s" (%s)。
他们的意图是: "%s"。
他们停在了 "%s" (%s) 格子上。
请生成一张卡牌，提供与他们的意图和当前层面相关的具体指引。请使用简体中文回复。`,
		theme: `重要：这是一张"灵感"卡。你必须使用觉知代币 "%s" 作为这张卡牌的核心主题和标题。
请解释 "%s" 如何帮助玩家实现意图。标题: "%s"。意图: "%s"。`,
		source: `玩家从%s中抽取了这张卡牌。这只影响叙述方式，不影响效果。`,
		rules: `请只返回 JSON，格式如下：
{"title": "卡牌标题", "description": "卡牌描述", "action": "行动指引", "effect": {"awareness": 0, "pain": 0, "service": 0}}
规则说明：
1. INSPIRATION (灵感): 获得 1-3 个觉知代币，0 痛苦。标题必须使用提供的觉知代币名称。
2. OBSTACLE (障碍): 获得 1-4 个痛苦代币，0 觉知。描述必须指出阻碍意图的特定心理或情绪障碍。
3. ANGEL (天使): 0 觉知，0 痛苦。标题应该是某种天使品质，例如 "慈悲"、"勇气"、"耐心"。描述应充满支持和爱。
4. SERVICE (服务): 获得 1 个服务代币。行动部分应描述对他人或世界的某种服务行为。
5. BLESSING (祝福): 获得 1 个服务代币和 1-2 个觉知代币。行动部分描述将觉知分享给他人。
6. INTUITION (觉知闪电): 判定玩家直觉是否正确。正确给予 1-2 觉知，错误给予 1 痛苦。在描述中明确说明。
7. UNIVERSE (宇宙回应): 模拟玩家运用自由意愿做出了选择。随机给予觉知 (1-2) 或移除痛苦 (1-2，负数)。
不要包含 JSON 之外的任何文字。`,
	},
	graduation: `玩家已成功完成了蜕变游戏的%s。
他们的意图是: "%s"。
请写一段简短的祝贺语（2句话），肯定他们在该层面的成长。请使用简体中文，只返回纯文本。`,
}
