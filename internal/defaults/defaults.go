// Package defaults carries the built-in content the platform falls back
// to whenever the backend is unreachable or a slug has never been
// written. The server also seeds its document table from these payloads
// on first start, so a fresh deployment renders something immediately.
package defaults

import "github.com/vistapra/content-hub-go/internal/content"

// Slugs lists the known screen slugs in display order.
func Slugs() []string {
	return []string{
		"preloader",
		"opening",
		"greeting",
		"message",
		"memories",
		"highlight",
		"giftBox",
		"giftReveal",
		"closing",
	}
}

// Aggregate returns a fresh copy of the default configuration. Callers
// may mutate the result freely.
func Aggregate() content.Aggregate {
	return content.Aggregate{
		RecipientName: "Friend",
		Theme: content.Theme{
			PrimaryColor:    "#e8b5b9",
			SecondaryColor:  "#d68c93",
			BackgroundColor: "#FFFAF5",
			TextColor:       "#171213",
			FontFamily:      "Plus Jakarta Sans, sans-serif",
			ButtonStyle:     "rounded",
		},
		MusicURL: "",
		Screens:  Screens(),
	}
}

// Screens returns a fresh copy of the default payload for every slug.
func Screens() map[string]content.Payload {
	return map[string]content.Payload{
		"preloader": {
			"backgroundColor": content.String("#FFFAF5"),
			"loaderColor":     content.String("#e8b5b9"),
			"duration":        content.Number(3500),
			"icon":            content.String("favorite"),
			"text":            content.String("Preparing something special..."),
			"logoImage":       content.String(""),
		},
		"opening": {
			"titleText":       content.String("Hello there…"),
			"subtitleText":    content.String("Tap to open"),
			"backgroundImage": content.String("https://placehold.co/1080x1920"),
			"buttonText":      content.String("Open"),
		},
		"greeting": {
			"heading":     content.String("A Day\nto Celebrate"),
			"subTitle":    content.String("Happy Birthday"),
			"badgeText":   content.String("Today is Special"),
			"message":     content.String("Wishing you a day as beautiful and radiant as you are."),
			"avatarImage": content.String("https://placehold.co/400x400"),
			"buttonText":  content.String("Open Tribute"),
		},
		"message": {
			"title": content.String("A Special Message"),
			"paragraphs": content.List(
				paragraph("1", "Happy Birthday!"),
				paragraph("2", "May your day be filled with the same joy and light you bring into our lives. We hope this year brings you as much happiness as you give to everyone around you."),
				paragraph("3", "Keep shining bright and never forget how loved you are. Here's to another year of beautiful memories and endless laughter."),
			),
			"signature":  content.String("With all our love"),
			"buttonText": content.String("Next Memory"),
		},
		"memories": {
			"title":      content.String("Beautiful Memories"),
			"subtitle":   content.String("Moments worth keeping"),
			"buttonText": content.String("Play Slideshow"),
			"memories": content.List(
				memory("1", "The Big Party", "A wonderful night with friends and family.", "Oct 12, 2023", "calendar_today"),
				memory("2", "Summer Trip", "Unforgettable summer vacation.", "Summer 2022", "location_on"),
				memory("3", "Always Smiling", "Captured at the perfect moment.", "Candid Moments", "photo_camera"),
			),
		},
		"highlight": {
			"title":    content.String("A Moment to\nRemember"),
			"location": content.String("Somewhere lovely, 2023"),
			"caption":  content.String("Celebrating Another Year of Joy"),
			"image":    content.String("https://placehold.co/1080x1350"),
			"highlights": content.List(
				content.Object(map[string]content.Value{
					"id":          content.String("1"),
					"title":       content.String("The Journey"),
					"icon":        content.String("location_on"),
					"color":       content.String("#D4AF37"),
					"description": content.String("A beautiful trip together."),
				}),
			),
		},
		"giftBox": {
			"boxText":  content.String("A surprise awaits..."),
			"hintText": content.String("We've collected memories and wishes just for your special day."),
			"skipText": content.String("Skip"),
			"boxImage": content.String("https://placehold.co/512x512"),
		},
		"giftReveal": {
			"revealTitle":   content.String("Made with love"),
			"revealMessage": content.String("For your special day"),
			"buttonText":    content.String("Open Tribute"),
			"giftImage":     content.String("https://placehold.co/800x800"),
		},
		"closing": {
			"closingMessage":  content.String("With Love"),
			"subtitle":        content.String("Hope this day is as beautiful as you"),
			"signature":       content.String("– From your loved ones –"),
			"buttonText":      content.String("Replay Tribute"),
			"backgroundImage": content.String("https://placehold.co/1080x1920"),
		},
	}
}

// Screen returns the default payload for one slug.
func Screen(slug string) (content.Payload, bool) {
	p, ok := Screens()[slug]
	return p, ok
}

func paragraph(id, text string) content.Value {
	return content.Object(map[string]content.Value{
		"id":   content.String(id),
		"text": content.String(text),
	})
}

func memory(id, title, description, date, icon string) content.Value {
	return content.Object(map[string]content.Value{
		"id":          content.String(id),
		"title":       content.String(title),
		"description": content.String(description),
		"date":        content.String(date),
		"image":       content.String("https://placehold.co/600x400"),
		"icon":        content.String(icon),
	})
}
