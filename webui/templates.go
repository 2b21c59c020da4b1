package webui

import "html/template"

// Prikazi su namerno goli HTML; izgled nije deo ovog sloja.
var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "login"}}
<!DOCTYPE html>
<html><head><title>Todo - Login</title></head><body>
<h1>{{if .Admin}}Admin Login{{else}}Login{{end}}</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="{{if .Admin}}/admin/login{{else}}/login{{end}}">
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <button type="submit">Sign in</button>
</form>
{{if not .Admin}}<p><a href="/register">Create an account</a></p>{{end}}
</body></html>
{{end}}

{{define "register"}}
<!DOCTYPE html>
<html><head><title>Todo - Register</title></head><body>
<h1>Register</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/register">
  <input type="text" name="username" placeholder="Username" required>
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <button type="submit">Register</button>
</form>
<p><a href="/login">Back to login</a></p>
</body></html>
{{end}}

{{define "tasks"}}
<!DOCTYPE html>
<html><head><title>Todo - Tasks</title></head><body>
<h1>My Tasks</h1>
<p>{{.Completed}} of {{.Total}} completed</p>
{{if .Message}}<p class="notice">{{.Message}}</p>{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="get" action="/tasks">
  <input type="text" name="q" placeholder="Search tasks..." value="{{.Search}}">
  <select name="status">
    <option value="all" {{if eq .Filter "all"}}selected{{end}}>All</option>
    <option value="pending" {{if eq .Filter "pending"}}selected{{end}}>Pending</option>
    <option value="in_progress" {{if eq .Filter "in_progress"}}selected{{end}}>In Progress</option>
    <option value="completed" {{if eq .Filter "completed"}}selected{{end}}>Completed</option>
  </select>
  <button type="submit">Filter</button>
</form>
<form method="post" action="/tasks/create">
  <input type="text" name="title" placeholder="Title" required>
  <input type="text" name="description" placeholder="Description">
  <input type="date" name="due_date">
  <button type="submit">Add task</button>
</form>
<table>
<tr><th>Title</th><th>Description</th><th>Due</th><th>Status</th><th></th></tr>
{{range .Tasks}}
<tr>
  <td>{{.Title}}</td><td>{{.Description}}</td><td>{{.DueDate}}</td>
  <td>{{if .IsCompleted}}completed{{else}}{{.Status}}{{end}}</td>
  <td>
    <form method="post" action="/tasks/{{.ID}}/toggle"><button type="submit">{{if .IsCompleted}}Reopen{{else}}Done{{end}}</button></form>
    <form method="post" action="/tasks/{{.ID}}/delete"><button type="submit">Delete</button></form>
  </td>
</tr>
{{end}}
</table>
<form method="post" action="/logout"><button type="submit">Logout</button></form>
</body></html>
{{end}}

{{define "users"}}
<!DOCTYPE html>
<html><head><title>Todo - Manage Users</title></head><body>
<h1>Manage Users</h1>
{{if .Message}}<p class="notice">{{.Message}}</p>{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="get" action="/admin/users">
  <input type="text" name="q" placeholder="Search users..." value="{{.Search}}">
  <button type="submit">Search</button>
</form>
<form method="post" action="/admin/users/create">
  <input type="text" name="username" placeholder="Username" required>
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <select name="role"><option value="user">user</option><option value="admin">admin</option></select>
  <button type="submit">Add user</button>
</form>
<table>
<tr><th>Username</th><th>Email</th><th>Role</th><th>Active</th><th></th></tr>
{{range .Users}}
<tr>
  <td>{{.Username}}</td><td>{{.Email}}</td><td>{{.Role}}</td><td>{{.IsActive}}</td>
  <td><form method="post" action="/admin/users/{{.ID}}/delete"><button type="submit">Delete</button></form></td>
</tr>
{{end}}
</table>
<form method="post" action="/logout"><button type="submit">Logout</button></form>
</body></html>
{{end}}

{{define "profile"}}
<!DOCTYPE html>
<html><head><title>Todo - Profile</title></head><body>
<h1>Profile Settings</h1>
{{if .Message}}<p class="notice">{{.Message}}</p>{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/profile">
  <input type="text" name="name" placeholder="Name" value="{{.Profile.Name}}" required>
  <input type="email" name="email" placeholder="Email" value="{{.Profile.Email}}" required>
  <input type="password" name="current_password" placeholder="Current password">
  <input type="password" name="new_password" placeholder="New password">
  <button type="submit">Save</button>
</form>
<p><a href="/tasks">Back to tasks</a></p>
</body></html>
{{end}}
`))
