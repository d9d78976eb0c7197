package search

// Topic is a named group of entries.
type Topic struct {
	Name    string
	Entries []*Entry
}

// Topics maps topic names to their entries, preserving the order in which
// topics were first added and the order of entries within each topic.
type Topics struct {
	order  []*Topic
	byName map[string]*Topic
}

// NewTopics returns an empty topic set.
func NewTopics() *Topics {
	return &Topics{byName: make(map[string]*Topic)}
}

// Add appends e to its topic, creating the topic on first use.
func (t *Topics) Add(e *Entry) {
	topic, ok := t.byName[e.Topic()]
	if !ok {
		topic = &Topic{Name: e.Topic()}
		t.byName[e.Topic()] = topic
		t.order = append(t.order, topic)
	}
	topic.Entries = append(topic.Entries, e)
}

// Get returns the named topic, or nil.
func (t *Topics) Get(name string) *Topic {
	return t.byName[name]
}

// All returns every topic in insertion order.
func (t *Topics) All() []*Topic {
	return t.order
}

// Names returns topic names in insertion order.
func (t *Topics) Names() []string {
	names := make([]string, len(t.order))
	for i, topic := range t.order {
		names[i] = topic.Name
	}
	return names
}

// Len returns the number of topics.
func (t *Topics) Len() int { return len(t.order) }

// Select returns the topics a run with the given filter covers: all topics
// when filter is empty, otherwise only the topic with that exact name (none
// if it does not exist).
func (t *Topics) Select(filter string) []*Topic {
	if filter == "" {
		return t.order
	}
	if topic, ok := t.byName[filter]; ok {
		return []*Topic{topic}
	}
	return nil
}

// Entries returns the entries of the selected topics, in order.
func Entries(topics []*Topic) []*Entry {
	var entries []*Entry
	for _, topic := range topics {
		entries = append(entries, topic.Entries...)
	}
	return entries
}
