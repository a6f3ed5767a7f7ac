package usecase

import (
	"fmt"

	"video-studio/internal/generation/domain/model"
)

// systemPrompt is the fixed instruction sent with every generation request.
const systemPrompt = `You are an advanced AI video generator using Google's Veo-3 model. Create high-quality videos based on user prompts with the following capabilities:

- Generate smooth, cinematic videos with professional quality
- Support various styles: cinematic, realistic, artistic, animated, documentary
- Create videos with proper motion, lighting, and visual effects
- Maintain visual consistency throughout the video
- Generate content appropriate for the specified aspect ratio and duration

Always create videos that are visually engaging, technically sound, and match the user's creative vision.`

var styleDescriptions = map[string]string{
	"cinematic":   "cinematic lighting, film-like quality, dramatic composition",
	"realistic":   "photorealistic, natural lighting, documentary style",
	"artistic":    "artistic interpretation, creative visual effects, stylized",
	"animated":    "smooth animation, stylized movement, animated aesthetic",
	"documentary": "documentary style, natural movement, informative visual approach",
}

var aspectRatioDescriptions = map[string]string{
	"16:9": "widescreen landscape format",
	"9:16": "vertical portrait format for mobile",
	"1:1":  "square format",
	"4:3":  "standard format",
}

// enhancePrompt derives the user instruction sent upstream, restating the
// requested duration, aspect ratio and style around the raw prompt.
func enhancePrompt(req model.GenerateRequest) string {
	style := req.Style
	if desc, ok := styleDescriptions[style]; ok {
		style = desc
	}
	aspect := req.AspectRatio
	if desc, ok := aspectRatioDescriptions[aspect]; ok {
		aspect = desc
	}

	return fmt.Sprintf(`Create a %d-second video in %s aspect ratio with %s style.

Video description: %s

Technical requirements:
- Duration: exactly %d seconds
- Aspect ratio: %s
- Style: %s
- High quality output with smooth motion
- Consistent visual theme throughout
- Professional video production standards

Please generate this video and return the video URL.`,
		req.Duration, aspect, style, req.Prompt,
		req.Duration, req.AspectRatio, req.Style)
}
