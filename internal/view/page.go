package view

import "sync"

// Banner is the success message region. It exists only once something
// has been shown in it.
type Banner struct {
	Message string
	Visible bool
}

// Snapshot is a consistent copy of the page state, ready to render.
type Snapshot struct {
	List         ListView
	Loading      bool
	Error        string
	ErrorVisible bool
	Success      *Banner
	Fields       FormFields
	Mode         FormMode
}

// Page is the in-memory document the controller draws on. Its zero value
// is not ready; use NewPage. Methods are safe for concurrent use.
type Page struct {
	mu sync.Mutex

	list         ListView
	loading      bool
	errMsg       string
	errVisible   bool
	success      *Banner
	fields       FormFields
	mode         FormMode
	scrollToForm bool
}

// NewPage returns an empty page in create mode.
func NewPage() *Page {
	return &Page{
		list: ListView{Placeholder: EmptyListMessage},
		mode: CreateMode(),
	}
}

func (p *Page) RenderList(list ListView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.list = list
}

func (p *Page) SetLoading(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = on
}

// ShowError sets the error banner text and makes it visible.
func (p *Page) ShowError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errMsg = msg
	p.errVisible = true
}

// HideError hides the error banner. The last text is kept, as a hidden
// element keeps its content.
func (p *Page) HideError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errVisible = false
}

func (p *Page) FormFields() FormFields {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fields
}

func (p *Page) SetFormFields(f FormFields) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fields = f
}

func (p *Page) SetFormMode(m FormMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = m
}

// ScrollToForm asks the next page view to bring the form into view.
func (p *Page) ScrollToForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollToForm = true
}

// TakeScrollToForm reports and clears a pending ScrollToForm request.
func (p *Page) TakeScrollToForm() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pending := p.scrollToForm
	p.scrollToForm = false
	return pending
}

// ShowSuccess creates the success banner on first use, then sets its
// text and makes it visible.
func (p *Page) ShowSuccess(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.success == nil {
		p.success = &Banner{}
	}
	p.success.Message = msg
	p.success.Visible = true
}

func (p *Page) HideSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.success != nil {
		p.success.Visible = false
	}
}

// Snapshot copies the current state.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		List:         ListView{Placeholder: p.list.Placeholder, Cards: append([]Card(nil), p.list.Cards...)},
		Loading:      p.loading,
		Error:        p.errMsg,
		ErrorVisible: p.errVisible,
		Fields:       p.fields,
		Mode:         p.mode,
	}
	if p.success != nil {
		banner := *p.success
		s.Success = &banner
	}
	return s
}
