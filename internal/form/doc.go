// Package form loads YAML form definitions and turns them into fields.
//
// A form file lists questions in the order they are asked. Questions marked
// detached are only reached through a jump on another question:
//
//	title: Lunch order
//	questions:
//	  - name: main
//	    query: What would you like?
//	    widget: choice
//	    choices: [Pizza, Salad]
//	    jumps:
//	      - when: {equals: Pizza}
//	        action: insert
//	        targets: [toppings]
//	  - name: toppings
//	    query: Toppings?
//	    widget: multi
//	    choices: [Olives, Basil, Chilli]
//	    detached: true
//	  - name: email
//	    query: Where should we send the receipt?
//	    widget: text
//	    reask_unless: '^[^@\s]+@[^@\s]+$'
//
// Jumps run in the question's unmount hook after reask_unless and
// required have accepted the answer. insert and branch build fresh fields
// for their targets; merge and skip address questions already in the flow
// by name.
package form
