package main

import (
	"fmt"
	"slices"

	"github.com/vango-dev/vtree/pkg/vdom"
)

type todo struct {
	ID    string
	Title string
	Done  bool
}

// todoStore holds the todo list state. Mutations go through the mounted
// list's instance so that several of them in one turn coalesce into a
// single re-render.
type todoStore struct {
	items   []todo
	nextID  int
	inst    vdom.Instance
	renders int
}

func newTodoStore(titles ...string) *todoStore {
	s := &todoStore{}
	for _, title := range titles {
		s.add(title)
	}
	return s
}

func (s *todoStore) update(fn func()) {
	if s.inst == nil {
		fn()
		return
	}
	s.inst.Update(fn)
}

func (s *todoStore) add(title string) {
	s.nextID++
	s.items = append(s.items, todo{ID: fmt.Sprintf("t%d", s.nextID), Title: title})
}

func (s *todoStore) index(id string) int {
	return slices.IndexFunc(s.items, func(t todo) bool { return t.ID == id })
}

// Add appends a new todo.
func (s *todoStore) Add(title string) {
	s.update(func() { s.add(title) })
}

// Remove deletes the todo with the given id.
func (s *todoStore) Remove(id string) {
	s.update(func() {
		if i := s.index(id); i >= 0 {
			s.items = slices.Delete(s.items, i, i+1)
		}
	})
}

// Toggle flips the done state of a todo.
func (s *todoStore) Toggle(id string) {
	s.update(func() {
		if i := s.index(id); i >= 0 {
			s.items[i].Done = !s.items[i].Done
		}
	})
}

// Rename changes a todo's title.
func (s *todoStore) Rename(id, title string) {
	s.update(func() {
		if i := s.index(id); i >= 0 {
			s.items[i].Title = title
		}
	})
}

// Reverse reverses the list order.
func (s *todoStore) Reverse() {
	s.update(func() { slices.Reverse(s.items) })
}

// Len returns the number of todos.
func (s *todoStore) Len() int {
	return len(s.items)
}

// At returns the todo at index i.
func (s *todoStore) At(i int) todo {
	return s.items[i]
}

// TodoItem renders one todo from its "todo" prop.
var TodoItem = vdom.Define("TodoItem", func(_ vdom.Props, _ vdom.Instance) vdom.Render {
	return func(props vdom.Props) vdom.Node {
		t, _ := props["todo"].(todo)
		var done any
		if t.Done {
			done = vdom.Class("done")
		}
		return vdom.Li(vdom.Data("id", t.ID), done, t.Title)
	}
})

// TodoList renders the store passed in the "store" prop, one keyed TodoItem
// per todo.
var TodoList = vdom.Define("TodoList", func(init vdom.Props, inst vdom.Instance) vdom.Render {
	store, _ := init["store"].(*todoStore)
	if store == nil {
		store = newTodoStore()
	}
	store.inst = inst
	inst.On(vdom.EventUnmount, func() { store.inst = nil })

	return func(props vdom.Props) vdom.Node {
		store.renders++

		items := make([]vdom.Node, 0, len(store.items))
		done := 0
		for _, t := range store.items {
			if t.Done {
				done++
			}
			items = append(items, &vdom.Component{
				Type:  TodoItem,
				Props: vdom.Props{"todo": t},
				Key:   t.ID,
			})
		}

		title := props.String("title")
		if title == "" {
			title = "Todos"
		}
		return vdom.Section(vdom.Class("todos"),
			vdom.H1(title),
			vdom.Ul(items),
			vdom.Footer(vdom.Textf("%d of %d done", done, len(store.items))),
		)
	}
})
