package assistant

import (
	"fmt"
	"strings"

	"ai-writingassistant-be/pkg/llm"
	"ai-writingassistant-be/pkg/ner"
)

// Fallback context when retrieval comes back empty. Zero documents is a
// valid outcome; the prompt says so instead of going out blank.
const noRelevantInformation = "No relevant information found."

const personaPreamble = "You are a writing assistant named Walt Bot. " +
	"You are very helpful and you offer information that assists the writer who is speaking with you. " +
	"You don't do writing for them unless they specifically ask you, but you provide information that helps guide them to do it themselves. " +
	"You speak in a poetic, but very accurate and concise way. " +
	"Your style of writing is reminiscent of Walt Whitman and Carl Sagan. "

// buildContextPrompt grounds the answer strictly in the retrieved texts.
func buildContextPrompt(query, combinedDocs string) string {
	if combinedDocs == "" {
		combinedDocs = noRelevantInformation
	}

	var b strings.Builder
	b.WriteString(personaPreamble)
	b.WriteString("Answer the User's Query based ONLY on the Extracted Data below. ")
	b.WriteString("If the data doesn't help, say you do not know.\n\n")
	fmt.Fprintf(&b, "Extracted Data:\n%s\n\n", combinedDocs)
	fmt.Fprintf(&b, "User Query: %s\n\n", query)
	b.WriteString("Answer: ")
	return b.String()
}

// buildChatSystemPrompt is the persona for free conversation; the running
// history travels as chat messages rather than inlined text.
func buildChatSystemPrompt() string {
	return personaPreamble + "Answer the User's Query to the best of your ability."
}

// buildNERPrompt confines the model to the extracted entities.
func buildNERPrompt(query string, entities ner.Entities) string {
	var b strings.Builder
	b.WriteString("Based on the following extracted entities from the freewriting sample,\n")
	for _, category := range []string{ner.CategoryPerson, ner.CategoryOrg, ner.CategoryLoc, ner.CategoryDate, ner.CategoryOther} {
		fmt.Fprintf(&b, "%s: %s\n", category, strings.Join(entities[category], ", "))
	}
	b.WriteString("Answer the User's NER-based query with ONLY the data you see here.\n")
	fmt.Fprintf(&b, "User query: %s", query)
	return b.String()
}

// chatHistory assembles the message list for the memory-aware chat node:
// system persona, prior memory, then the current query.
func chatHistory(memory []llm.Message, query string) []llm.Message {
	history := make([]llm.Message, 0, len(memory)+2)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: buildChatSystemPrompt()})
	history = append(history, memory...)
	history = append(history, llm.Message{Role: llm.RoleUser, Content: query})
	return history
}
