package resource

// Resource is a support line or organisation shown next to the chat.
type Resource struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Directory groups resources the way the crisis panel lists them.
type Directory struct {
	Crisis  []Resource `json:"crisis"`
	General []Resource `json:"general"`
}

// Seed provides the default helplines.
func Seed() Directory {
	return Directory{
		Crisis: []Resource{
			{
				Name:        "Snehi Suicide Prevention Helpline",
				Description: "Call 91-22-2772 6771/6773",
				URL:         "https://www.snehi.org/",
			},
			{
				Name:        "iCALL Helpline",
				Description: "Call 9152987821",
				URL:         "https://icallhelpline.org/",
			},
			{
				Name:        "Kiran Mental Health Rehabilitation Helpline",
				Description: "Call 1800-599-0019",
				URL:         "https://www.mhrdnats.gov.in/",
			},
			{
				Name:        "Emergency Services (India)",
				Description: "Call 112 for immediate assistance",
				URL:         "https://112.gov.in/",
			},
		},
		General: []Resource{
			{
				Name:        "Vandrevala Foundation",
				Description: "Call 9999666555 or 1860-2662-345",
				URL:         "https://www.vandrevalafoundation.com/",
			},
			{
				Name:        "Fortis Stress Helpline",
				Description: "Call 08376804102",
				URL:         "https://www.fortishealthcare.com/india/mental-health-and-behavioural-sciences",
			},
		},
	}
}
