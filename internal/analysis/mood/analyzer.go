package mood

import (
	"fmt"
	"regexp"
	"strings"

	model "github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

// Decision is a heuristic reading of one user message.
type Decision struct {
	Mood        string
	Intensity   int
	Explanation string
	// Responses are canned replies suitable for the detected mood.
	Responses []string
	Matched   bool
}

type pattern struct {
	re        *regexp.Regexp
	responses []string
	mood      string
	intensity int
}

// crisisKeywords are matched as plain substrings of the lowercased message.
var crisisKeywords = []string{
	"suicide", "kill myself", "end my life", "want to die", "harm myself",
	"self-harm", "cut myself", "hurting myself", "don't want to live",
	"better off dead", "no reason to live", "how to die", "end it all", "take my own life",
	"giving up", "can't go on", "don't know what to do anymore", "no way out",
	"overwhelmed", "i can't take it anymore", "i feel trapped", "i want to disappear",
	"i'm done with everything", "i can't do this anymore", "i feel hopeless", "i feel helpless",
	"i want to give up", "i'm at my limit", "i can't handle this", "i want it to stop",
	"i wish i was dead", "i wish i could just disappear",
}

// patterns are tried in order; the first match wins.
var patterns = []pattern{
	{
		re: regexp.MustCompile(`\b(hi|hello|hey|greetings)\b`),
		responses: []string{
			"Hello! How are you feeling today?",
			"Hi there! I'm here to chat with you. How are you doing?",
			"Hey! It's nice to hear from you. How's your day going?",
		},
		mood:      model.Neutral,
		intensity: 5,
	},
	{
		re: regexp.MustCompile(`\b(good|great|fine|okay|happy|excellent)\b`),
		responses: []string{
			"I'm glad to hear you're doing well! Is there anything specific you'd like to talk about?",
			"That's wonderful! What's been going well for you lately?",
			"Great to hear that! What's made your day positive so far?",
		},
		mood:      model.Positive,
		intensity: 7,
	},
	{
		re: regexp.MustCompile(`\b(sad|down|depressed|unhappy|upset|blue)\b`),
		responses: []string{
			"I'm sorry to hear you're feeling down. Would you like to talk about what's troubling you?",
			"It can be tough to feel that way. What's been on your mind lately?",
			"I'm here to listen if you want to share more about what's making you feel this way.",
		},
		mood:      model.Depressed,
		intensity: 6,
	},
	{
		re: regexp.MustCompile(`\b(angry|mad|frustrated|annoyed)\b`),
		responses: []string{
			"I understand feeling frustrated. What's causing these feelings?",
			"It sounds like you're dealing with some strong emotions. Would you like to talk about what happened?",
			"Being angry is a natural response sometimes. What's been frustrating you?",
		},
		mood:      model.Angry,
		intensity: 6,
	},
	{
		re: regexp.MustCompile(`\b(anxious|worried|nervous|stressed|fear|scary)\b`),
		responses: []string{
			"Anxiety can be really challenging. What's making you feel anxious right now?",
			"I understand that worry can be overwhelming. What's on your mind?",
			"Feeling stressed is common. Can you share what's causing this feeling?",
		},
		mood:      model.Anxious,
		intensity: 6,
	},
	{
		re: regexp.MustCompile(`\b(tired|exhausted|sleepy|fatigued)\b`),
		responses: []string{
			"Being tired can really affect how we feel. Have you been able to get enough rest?",
			"Fatigue can be difficult to deal with. What's your sleep been like lately?",
			"Taking care of your energy levels is important. What might help you recharge?",
		},
		mood:      model.Negative,
		intensity: 4,
	},
	{
		re: regexp.MustCompile(`\b(thank you|thanks)\b`),
		responses: []string{
			"You're welcome! I'm here to support you.",
			"Glad I could help! Is there anything else you'd like to discuss?",
			"Of course! I'm here whenever you need to talk.",
		},
		mood:      model.Positive,
		intensity: 6,
	},
	{
		re: regexp.MustCompile(`\b(bye|goodbye|see you|talk later)\b`),
		responses: []string{
			"Take care of yourself! Feel free to come back anytime.",
			"Goodbye for now. I'll be here when you want to chat again.",
			"Take care! Remember to be kind to yourself.",
		},
		mood:      model.Neutral,
		intensity: 5,
	},
	{
		re: regexp.MustCompile(`\b(love|loved|loving)\b`),
		responses: []string{
			"Love is such a powerful emotion. Can you tell me more about these feelings?",
			"It sounds like this is meaningful to you. What about it stands out?",
			"Those feelings can be really important. How does it affect you?",
		},
		mood:      model.Positive,
		intensity: 8,
	},
	{
		re: regexp.MustCompile(`\b(hopeless|helpless|worthless)\b`),
		responses: []string{
			"I'm really sorry you're feeling this way. These feelings can be overwhelming but they're not permanent. What's contributing to this feeling?",
			"That's a really difficult feeling to experience. Would you like to talk more about what's going on?",
			"Those feelings are really challenging. Please know you're not alone in this. What's been happening recently?",
		},
		mood:      model.Depressed,
		intensity: 8,
	},
	{
		re: regexp.MustCompile(`\b(lonely|alone|isolated)\b`),
		responses: []string{
			"Feeling lonely can be really difficult. Would you like to talk about what's making you feel isolated?",
			"I'm sorry you're feeling alone. Social connection is so important. What's been happening with your relationships lately?",
			"That sounds really hard. Loneliness affects many people. What might help you feel more connected?",
		},
		mood:      model.Depressed,
		intensity: 7,
	},
	{
		re: regexp.MustCompile(`\b(confused|unsure|uncertain|don't know)\b`),
		responses: []string{
			"It's okay to feel uncertain sometimes. What specifically are you feeling confused about?",
			"Confusion and uncertainty can be uncomfortable. What would help bring some clarity?",
			"Taking time to process complex situations is important. What's making you feel uncertain?",
		},
		mood:      model.Confused,
		intensity: 5,
	},
	{
		re: regexp.MustCompile(`\b(excited|thrilled|eager)\b`),
		responses: []string{
			"That sounds wonderful! What's making you feel excited?",
			"It's great to hear you're feeling enthusiastic! What are you looking forward to?",
			"Excitement is such a positive energy! Tell me more about what's got you feeling this way.",
		},
		mood:      model.Happy,
		intensity: 8,
	},
}

var defaultResponses = []string{
	"I'm listening. Can you tell me more?",
	"I'm here to support you. Would you like to share more about what's on your mind?",
	"Thank you for sharing. How does that make you feel?",
	"I see. What else would you like to talk about today?",
	"I appreciate you opening up. Is there anything specific you'd like to discuss?",
}

// CrisisResponses are replies used whenever a message is flagged as a crisis.
var CrisisResponses = []string{
	"I'm concerned about what you're sharing. If you're in immediate danger, please contact emergency services (112 in India) or a crisis helpline like the Snehi Suicide Prevention Helpline (91-22-2772 6771/6773). Would it help to talk more about what you're experiencing?",
	"It sounds like you're going through a really difficult time. Your safety is important - please consider reaching out to a crisis counselor by calling the Snehi Suicide Prevention Helpline (91-22-2772 6771/6773) or the iCALL helpline (9152987821). Would you like to tell me more about what's happening?",
	"I'm really concerned about you right now. Please consider talking to a mental health professional as soon as possible. The Snehi Suicide Prevention Helpline (91-22-2772 6771/6773), iCALL (9152987821), and the Kiran Mental Health Rehabilitation Helpline (1800-599-0019) are available. Can we continue talking about what's bringing up these feelings?",
}

// DetectCrisis reports whether text contains any crisis keyword.
func DetectCrisis(text string) bool {
	normalized := strings.ToLower(text)
	for _, keyword := range crisisKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

// Analyze matches text against the pattern bank. Unmatched text yields a
// neutral decision with the generic responses.
func Analyze(text string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, p := range patterns {
		if !p.re.MatchString(normalized) {
			continue
		}
		return Decision{
			Mood:        p.mood,
			Intensity:   p.intensity,
			Explanation: fmt.Sprintf("Message contains words suggesting a %s mood.", p.mood),
			Responses:   p.responses,
			Matched:     true,
		}
	}

	return Decision{
		Mood:        model.Neutral,
		Intensity:   5,
		Explanation: "Unable to determine specific mood from the message.",
		Responses:   defaultResponses,
	}
}

// CrisisDecision is the fixed reading attached to crisis replies.
func CrisisDecision() Decision {
	return Decision{
		Mood:        model.Depressed,
		Intensity:   8,
		Explanation: "The message contains concerning language that may indicate a crisis.",
		Responses:   CrisisResponses,
		Matched:     true,
	}
}
