// Package seed generates sample notifications for demos and local testing.
package seed

import (
	"math/rand/v2"
	"time"

	"github.com/AndyChen1024/NotiMind/internal/classify"
	"github.com/AndyChen1024/NotiMind/internal/model"
)

type sourceApp struct {
	id   string
	name string
}

var messagingApps = []sourceApp{
	{"com.whatsapp.messages", "WhatsApp"},
	{"com.tencent.mm.message", "WeChat"},
	{"org.telegram.chat", "Telegram"},
	{"com.google.android.apps.sms", "Messages"},
}

var mailApps = []sourceApp{
	{"com.google.android.gm.mail", "Gmail"},
	{"com.microsoft.office.outlook", "Outlook"},
	{"com.yahoo.mobile.client.mail", "Yahoo Mail"},
}

var socialApps = []sourceApp{
	{"com.instagram.android", "Instagram"},
	{"com.twitter.android", "Twitter"},
	{"com.linkedin.android", "LinkedIn"},
	{"com.sina.weibo", "Weibo"},
}

var newsApps = []sourceApp{
	{"com.nytimes.android.news", "NYTimes"},
	{"bbc.mobile.news.ww", "BBC News"},
	{"com.cnn.mobile.android.news", "CNN"},
}

var shoppingApps = []sourceApp{
	{"com.amazon.mShop.shopping", "Amazon"},
	{"com.ebay.mobile.shopping", "eBay"},
	{"com.taobao.shopping", "Taobao"},
}

var messagingTitles = []string{
	"Alice", "Bob", "Team chat", "Family group", "Study group",
}

var messagingContents = []string{
	"Are we still on for lunch?",
	"Just sent you the photos",
	"Can you call me when you're free?",
	"Meeting moved to 3pm",
	"See you at the weekend!",
}

var mailTitles = []string{
	"Weekly report", "Invoice attached", "Re: project timeline",
	"Your subscription renewal", "Meeting notes",
}

var mailContents = []string{
	"Please find the latest numbers attached.",
	"Following up on our conversation from yesterday.",
	"The timeline has been updated, see details inside.",
	"Your receipt for this month is ready.",
}

var socialContents = []string{
	"liked your photo",
	"commented on your post",
	"started following you",
	"mentioned you in a story",
}

var newsTitles = []string{
	"Morning briefing",
	"Markets close higher after rate decision",
	"New breakthrough in battery research",
	"Weekend weather outlook",
	"Match report: late winner settles derby",
}

var shoppingTitles = []string{
	"Flash sale: 50% off today only",
	"Your order has shipped",
	"Don't miss this discount",
	"Price drop on items in your cart",
}

// Generator produces pseudo-random sample notifications. The same seed
// yields the same sequence, which keeps demo setups reproducible.
type Generator struct {
	rng *rand.Rand
	loc *time.Location
}

// NewGenerator builds a generator with the given seed. loc controls which
// local days the timestamps land in; nil means time.Local.
func NewGenerator(seed uint64, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.Local
	}
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, 0)),
		loc: loc,
	}
}

// Notifications generates count sample notifications with timestamps spread
// uniformly over the local days start..end inclusive. Categories come from
// the same classifier used on the ingest path, so seeded data looks exactly
// like captured data.
func (g *Generator) Notifications(start, end model.Date, count int) []model.Notification {
	if start.After(end) {
		start, end = end, start
	}
	startMillis := start.Millis(g.loc)
	endMillis := end.Next().Millis(g.loc)

	notifications := make([]model.Notification, 0, count)
	for i := 0; i < count; i++ {
		n := g.one()
		n.Timestamp = startMillis + g.rng.Int64N(endMillis-startMillis)
		n.Category = string(classify.Classify(n.SourceID, n.Title, n.Body))
		notifications = append(notifications, n)
	}
	return notifications
}

func (g *Generator) one() model.Notification {
	switch g.rng.IntN(5) {
	case 0:
		app := pick(g.rng, messagingApps)
		return model.Notification{
			SourceID:   app.id,
			SourceName: app.name,
			Title:      pick(g.rng, messagingTitles),
			Body:       pick(g.rng, messagingContents),
		}
	case 1:
		app := pick(g.rng, mailApps)
		return model.Notification{
			SourceID:   app.id,
			SourceName: app.name,
			Title:      pick(g.rng, mailTitles),
			Body:       pick(g.rng, mailContents),
		}
	case 2:
		app := pick(g.rng, socialApps)
		return model.Notification{
			SourceID:   app.id,
			SourceName: app.name,
			Title:      app.name,
			Body:       "Someone " + pick(g.rng, socialContents),
		}
	case 3:
		app := pick(g.rng, newsApps)
		return model.Notification{
			SourceID:   app.id,
			SourceName: app.name,
			Title:      pick(g.rng, newsTitles),
			Body:       "Tap to read the full story.",
		}
	default:
		app := pick(g.rng, shoppingApps)
		return model.Notification{
			SourceID:   app.id,
			SourceName: app.name,
			Title:      pick(g.rng, shoppingTitles),
			Body:       "Open the app for details.",
		}
	}
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
