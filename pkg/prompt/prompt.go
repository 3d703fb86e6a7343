package prompt

import (
	"fmt"
	"strings"
)

// チャット補完に渡すシステムプロンプトの定数です。
const (
	// ExpansionSystemPrompt はシードプロンプトを展開するプロンプト作成者の役割定義です。
	ExpansionSystemPrompt = `You are a prompt creator for a visual artist. ` +
		`You avoid unsafe prompts that violate the provider's content policy. ` +
		`Your prompts should be varied, inspiring, and positive, covering a broad artistic range ` +
		`including, but not limited to photography, painting, and various printmaking techniques. ` +
		`Do not name any living or deceased artists or other persons in your prompts. ` +
		`You should only return the prompt itself and no extraneous text.`

	// MergeSystemPrompt はスタイル記述の統合を担う役割定義です。
	MergeSystemPrompt = "You are an expert in analyzing and merging image style descriptions for AI image generation."

	// CombineSystemPrompt は内容プロンプトとスタイル記述の合成を担う役割定義です。
	CombineSystemPrompt = "You are an expert prompt engineer for AI image generation."

	// StyleDescriptionInstruction は単一画像のスタイル記述を求める指示です。
	StyleDescriptionInstruction = "Describe the visual style and characteristics of this image in detail, " +
		"including lighting, color palette, perspective, camera placement, subject, contrast, textures, " +
		"and overall atmosphere. Focus on stylistic elements."
)

// BuildExpansionPrompt は、シードプロンプトから画像生成用プロンプトを1件
// 生成させるユーザープロンプトを構築します。
func BuildExpansionPrompt(seedPrompt string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate a unique prompt that exclusively focuses on this subject: '%s'.", seedPrompt))
	sb.WriteString("Describe interesting and creative camera angles, the angle and color of natural and artificial lighting, ")
	sb.WriteString("times of day, weather, artistic styles, and eras, including midcentury through modern times. ")
	sb.WriteString("Choose a color palette that is consistently carried throughout the image. ")
	sb.WriteString("Try to capture the detail of the design and textures of the walls, floor coverings, and ceilings. ")
	sb.WriteString("Work to capture the beauty, the vitality, and history of the subject. ")
	sb.WriteString("The prompt should explicitly state that the scene should not have any text or words in it.")
	return sb.String()
}

// BuildCombinedStyleInstruction は、複数画像に共通するスタイル要素の記述を
// 求める指示を構築します。項目は独立したセクションとして要求します。
func BuildCombinedStyleInstruction() string {
	var sb strings.Builder
	sb.WriteString("Generate a detailed style description of the common attributes of style that all the following images convey, ")
	sb.WriteString("including specific independent sections describing the following: ")
	sb.WriteString("1. For the primary human focus in the image, the typical posing, framing, proximity to the camera, clothing style, and importantly, if their head or face is visible. ")
	sb.WriteString("2. Typical lighting, light color, lighting angle, and time of day. ")
	sb.WriteString("3. Common color palette and dominant colors. Do not list the objects, just describe the colors. ")
	sb.WriteString("4. Common camera angles, image orientation, camera placement, and perspective. ")
	sb.WriteString("5. Mood, atmosphere, and artistic style, including any specific eras or artistic movements, if any. ")
	sb.WriteString("6. Image processing, such as contrast, boosting or other effects. ")
	sb.WriteString("7. Cleanliness of the surroundings. ")
	sb.WriteString("8. Common textures prevalent, if any, in surfaces and clothing. ")
	sb.WriteString("Only include stylistic elements common to all images. Do not convey specifics of any single image. ")
	sb.WriteString("Avoid unsafe language that violates the provider's content policy or may cause prompt truncation.")
	return sb.String()
}

// BuildMergePrompt は、複数のスタイル記述を1つの統合スタイルプロンプトへ
// まとめる指示を構築します。重複情報と被写体情報の除去を要求します。
func BuildMergePrompt(styleDescriptions []string) string {
	var sb strings.Builder
	sb.WriteString("Given the following style descriptions:\n\n")
	sb.WriteString(strings.Join(styleDescriptions, " "))
	sb.WriteString("\n\nMerge these descriptions into a single, comprehensive style prompt suitable for guiding an AI image generator. ")
	sb.WriteString("The merged style should be detailed, cohesive, and include stylistic elements such as dominant color scheme, lighting, color palette, perspective, camera placement, contrast, textures, and overall atmosphere. ")
	sb.WriteString("For pictures including people, note the parts of their bodies that are not visible, their poses, and posture. ")
	sb.WriteString("With the exception of people, remove any references to specific subjects. Eliminate any duplicate style information.")
	return sb.String()
}

// BuildCombinePrompt は、内容プロンプトとスタイル記述を合成した
// 画像生成用プロンプトを作らせる指示を構築します。
func BuildCombinePrompt(contentPrompt, styleDescription string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Based on the following style descriptions: %s, ", styleDescription))
	sb.WriteString(fmt.Sprintf("and the following content prompt: '%s', ", contentPrompt))
	sb.WriteString("generate a detailed image generation prompt that incorporates all the style elements, ")
	sb.WriteString("including specific independent sections describing the following: ")
	sb.WriteString("1. Primary human subject, if any, their pose, proximity to the camera, posture, clothing, and importantly, if their head or face is visible. ")
	sb.WriteString("2. Lighting, light color, lighting angle, and time of day. ")
	sb.WriteString("3. Color palette and dominant colors. Do not list the objects, just describe the colors. ")
	sb.WriteString("4. Camera angle, image orientation, camera placement, and perspective. ")
	sb.WriteString("5. Subject, mood, atmosphere, and artistic style, including any specific eras or artistic movements, if any. ")
	sb.WriteString("6. Image processing, such as contrast, boosting or other effects. ")
	sb.WriteString("7. Cleanliness of the subject and surroundings and any other relevant details. ")
	sb.WriteString("8. Object of focus. Describe what the primary subject is looking at and what they are holding. ")
	sb.WriteString("9. Textures of surfaces. Do not list the objects, just their textures. ")
	sb.WriteString("The resulting image generation prompt should be detailed and descriptive. No text is allowed in the image. ")
	sb.WriteString("The resulting image generation prompt should exclude descriptions that don't relate to the provided content prompt.")
	return sb.String()
}
