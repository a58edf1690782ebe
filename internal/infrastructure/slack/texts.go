package slack

import (
	"strings"

	"github.com/slack-go/slack"
)

// maxCollectedTexts は1メッセージから収集する文字列数の上限
const maxCollectedTexts = 200

// collectMessageTexts はスキップ判定用にメッセージの意味のあるフィールドから
// 文字列を収集する。本文・添付・ブロックを対象にした上限付きの明示的な走査で、
// 収集数がmaxCollectedTextsに達したらそこで打ち切る
func collectMessageTexts(msg *slack.Message) []string {
	c := &textCollector{}

	c.add(msg.Text)

	for i := range msg.Attachments {
		a := &msg.Attachments[i]
		c.add(a.Pretext, a.AuthorName, a.Title, a.Text, a.Fallback, a.Footer)
		for _, f := range a.Fields {
			c.add(f.Title, f.Value)
		}
		if c.full() {
			return c.texts
		}
	}

	for _, block := range msg.Blocks.BlockSet {
		c.addBlock(block)
		if c.full() {
			return c.texts
		}
	}

	return c.texts
}

// textCollector は上限付きで空でない文字列を集める
type textCollector struct {
	texts []string
}

func (c *textCollector) add(values ...string) {
	for _, v := range values {
		if v == "" || c.full() {
			continue
		}
		c.texts = append(c.texts, v)
	}
}

func (c *textCollector) full() bool {
	return len(c.texts) >= maxCollectedTexts
}

// addBlock はブロックの種類ごとにテキストを取り出す
func (c *textCollector) addBlock(block slack.Block) {
	switch b := block.(type) {
	case *slack.SectionBlock:
		if b.Text != nil {
			c.add(b.Text.Text)
		}
		for _, f := range b.Fields {
			if f != nil {
				c.add(f.Text)
			}
		}
	case *slack.HeaderBlock:
		if b.Text != nil {
			c.add(b.Text.Text)
		}
	case *slack.ContextBlock:
		for _, el := range b.ContextElements.Elements {
			if t, ok := el.(*slack.TextBlockObject); ok {
				c.add(t.Text)
			}
		}
	case *slack.RichTextBlock:
		for _, el := range b.Elements {
			c.addRichTextElement(el)
		}
	}
}

// addRichTextElement はリッチテキスト要素からテキストを取り出す
// 1セクションは1つの文字列に連結し、要素をまたぐ "from: <@UID>" も検出できるようにする
func (c *textCollector) addRichTextElement(el slack.RichTextElement) {
	switch e := el.(type) {
	case *slack.RichTextSection:
		c.add(flattenSectionElements(e.Elements))
	case *slack.RichTextQuote:
		c.add(flattenSectionElements(e.Elements))
	case *slack.RichTextList:
		for _, le := range e.Elements {
			c.addRichTextElement(le)
		}
	}
}

// flattenSectionElements はセクション内の要素を1つの文字列に連結する
// ユーザー言及は "from:" 帰属判定のためメンション表記 <@UID> に戻す
func flattenSectionElements(elements []slack.RichTextSectionElement) string {
	var sb strings.Builder
	for _, se := range elements {
		switch t := se.(type) {
		case *slack.RichTextSectionTextElement:
			sb.WriteString(t.Text)
		case *slack.RichTextSectionLinkElement:
			sb.WriteString(t.Text)
		case *slack.RichTextSectionUserElement:
			sb.WriteString("<@" + t.UserID + ">")
		}
	}
	return sb.String()
}
